package cmd

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avinashb/quizmind/internal/aigen"
	"github.com/avinashb/quizmind/internal/bank"
	"github.com/avinashb/quizmind/internal/profile"
	"github.com/avinashb/quizmind/internal/quiz"
	"github.com/avinashb/quizmind/internal/session"
	"github.com/avinashb/quizmind/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run an interactive quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func init() {
	addQuizFlags(quizCmd)
}

// addQuizFlags registers the interactive quiz flags. The root command
// runs the quiz by default, so it carries the same set.
func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().String("subject", "Python Programming", "Quiz subject")
	cmd.Flags().String("user", "local", "User id for history tracking")
	cmd.Flags().String("difficulty", "", "Starting difficulty (Beginner, Intermediate, Advanced, Expert)")
	cmd.Flags().Int("questions", 10, "Maximum number of questions")
}

func runQuiz(cmd *cobra.Command) error {
	subject, _ := cmd.Flags().GetString("subject")
	userID, _ := cmd.Flags().GetString("user")
	levelFlag, _ := cmd.Flags().GetString("difficulty")
	maxQuestions, _ := cmd.Flags().GetInt("questions")

	prof := loadProfile()

	difficulty := prof.StartingDifficulty()
	if levelFlag != "" {
		d, err := quiz.ParseDifficulty(levelFlag)
		if err != nil {
			return err
		}
		difficulty = d
	}

	st := openStore(cmd)
	var attempts store.AttemptRepo
	var events store.EventRepo
	if st != nil {
		defer st.Close()
		attempts = st.AttemptRepo()
		events = st.EventRepo()
	}

	gateway := aigen.New(newProvider(cmd, events), aigen.DefaultConfig())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	manager := session.NewManager(bank.Builtin(), gateway, session.Config{
		Strategy: bank.NewWeighted(rng),
		Attempts: attempts,
		Profile:  prof.Context(),
	})

	sid, err := manager.Start(userID, subject, difficulty)
	if err != nil {
		return err
	}

	fmt.Printf("Starting %s quiz at %s level. Type 'quit' to stop.\n\n", subject, difficulty)

	reader := bufio.NewReader(os.Stdin)
	for i := 0; i < maxQuestions; i++ {
		q, err := manager.NextQuestion(cmd.Context(), sid)
		if err != nil {
			return err
		}
		if q == nil {
			fmt.Println("No more questions available. Quiz complete!")
			break
		}

		printQuestion(i+1, q)

		start := time.Now()
		fmt.Print("> ")
		answer, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		answer = strings.TrimSpace(answer)
		if strings.EqualFold(answer, "quit") {
			break
		}
		taken := int(time.Since(start).Seconds())

		res, err := manager.Submit(cmd.Context(), sid, q.ID, answer, taken, 0, 0)
		if err != nil {
			return err
		}
		printResult(res)
	}

	sum, err := manager.End(cmd.Context(), sid)
	if err != nil {
		return err
	}
	printSummary(sum)
	return nil
}

func printQuestion(n int, q *quiz.Question) {
	fmt.Printf("Question %d [%s / %s]\n", n, q.Difficulty, q.Topic)
	fmt.Println(q.Text)
	for i, opt := range q.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
}

func printResult(res *session.Result) {
	if res.Correct {
		fmt.Println("\nCorrect!")
	} else {
		fmt.Printf("\nIncorrect. The answer was: %s\n", res.CorrectAnswer)
	}
	if res.Feedback != "" {
		fmt.Println(res.Feedback)
	}
	if res.DifficultyChanged {
		fmt.Printf("Difficulty is now %s.\n", res.NewDifficulty)
	}
	fmt.Printf("Accuracy so far: %.0f%%\n\n", res.CurrentAccuracy*100)
}

func printSummary(sum *session.Summary) {
	fmt.Println("\n--- Session summary ---")
	fmt.Printf("Questions answered: %d\n", sum.QuestionsAnswered)
	fmt.Printf("Correct: %d (%.0f%%)\n", sum.CorrectAnswers, sum.Accuracy*100)
	fmt.Printf("Final difficulty: %s\n", sum.FinalDifficulty)
	if sum.QuestionsAnswered > 0 {
		fmt.Printf("Average time per question: %.0fs\n", sum.AverageSeconds)
	}
	for level, ds := range sum.DifficultyBreakdown {
		fmt.Printf("  %s: %d/%d\n", level, ds.Correct, ds.Total)
	}
}

// loadProfile reads the learner profile, falling back to defaults on
// any error.
func loadProfile() *profile.Profile {
	path, err := profile.DefaultPath()
	if err != nil {
		return profile.Default()
	}
	p, err := profile.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load profile: %v\n", err)
		return profile.Default()
	}
	return p
}

// openStore opens the history database, returning nil when unavailable
// so the quiz can still run without persistence.
func openStore(cmd *cobra.Command) *store.Store {
	path, err := resolveDBPath(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		return nil
	}
	return st
}
