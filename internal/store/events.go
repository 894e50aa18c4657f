package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, rec AttemptRecord) error {
	a := rec.Attempt
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts
			(id, session_id, user_id, question_id, subject, answer, correct,
			 time_taken_s, hints_used, difficulty, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, rec.SessionID, a.UserID, a.QuestionID, rec.Subject, a.Answer,
		boolToInt(a.Correct), a.TimeTaken, a.HintsUsed, int(a.Difficulty),
		a.Confidence, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) SaveSessionResult(ctx context.Context, res SessionResult) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_results
			(session_id, user_id, subject, questions, correct, total_time_s,
			 final_difficulty, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO NOTHING`,
		res.SessionID, res.UserID, res.Subject, res.Questions, res.Correct,
		res.TotalTimeSec, int(res.FinalDifficulty), res.StartedAt, res.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session result: %w", err)
	}
	return nil
}

func (r *attemptRepo) SubjectStats(ctx context.Context, userID, subject string) (SubjectStats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(correct), 0)
		FROM attempts
		WHERE user_id = ? AND subject = ?`,
		userID, subject,
	)

	var stats SubjectStats
	if err := row.Scan(&stats.Attempts, &stats.Correct); err != nil {
		return SubjectStats{}, fmt.Errorf("query subject stats: %w", err)
	}
	if stats.Attempts > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Attempts)
	}
	return stats, nil
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, boolToInt(data.Success),
		data.ErrorMessage, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
