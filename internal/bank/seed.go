package bank

import "github.com/avinashb/quizmind/internal/quiz"

// Builtin returns the bank of curated starter questions. Hosts that load
// their own content can ignore this and construct a Bank directly.
func Builtin() *Bank {
	return New(builtinQuestions()...)
}

func builtinQuestions() []*quiz.Question {
	return []*quiz.Question{
		{
			ID:         "py_001",
			Subject:    "Python Programming",
			Topic:      "Variables and Data Types",
			Text:       "What is the output of: print(type(5.0))?",
			Kind:       quiz.KindMultipleChoice,
			Difficulty: quiz.Beginner,
			Options: []string{
				"<class 'int'>", "<class 'float'>", "<class 'str'>", "<class 'bool'>",
			},
			Answer:      "<class 'float'>",
			Explanation: "5.0 is a floating-point number, so type(5.0) returns <class 'float'>.",
			Hints: []string{
				"Look at the decimal point",
				"Python distinguishes between integers and floats",
			},
			EstimatedSeconds: 30,
			Tags:             []string{"data_types", "built_in_functions"},
			Metadata:         map[string]string{"concept": "type_system"},
			Source:           quiz.SourceBank,
		},
		{
			ID:          "py_002",
			Subject:     "Python Programming",
			Topic:       "Control Flow",
			Text:        "Complete the code: for i in _____(5): print(i)",
			Kind:        quiz.KindFillBlank,
			Difficulty:  quiz.Beginner,
			Answer:      "range",
			Explanation: "The range() function generates a sequence of numbers from 0 to n-1.",
			Hints: []string{
				"Think about generating sequences",
				"It's a built-in function",
			},
			EstimatedSeconds: 45,
			Tags:             []string{"loops", "range_function"},
			Metadata:         map[string]string{"concept": "iteration"},
			Source:           quiz.SourceBank,
		},
		{
			ID:               "py_003",
			Subject:          "Python Programming",
			Topic:            "Variables and Data Types",
			Text:             "Lists in Python are mutable. True or false?",
			Kind:             quiz.KindTrueFalse,
			Difficulty:       quiz.Beginner,
			Answer:           "true",
			Explanation:      "Lists can be modified in place; tuples are the immutable counterpart.",
			Hints:            []string{"Compare lists with tuples"},
			EstimatedSeconds: 20,
			Tags:             []string{"data_types", "mutability"},
			Source:           quiz.SourceBank,
		},
		{
			ID:      "py_004",
			Subject: "Python Programming",
			Topic:   "Functions",
			Text: "What will this function return?\n\ndef mystery(x, y=10):\n    return x * y\n\nresult = mystery(5)",
			Kind:             quiz.KindShortAnswer,
			Difficulty:       quiz.Intermediate,
			Answer:           "50",
			Explanation:      "The function multiplies x (5) by y (default value 10), resulting in 50.",
			Hints: []string{
				"Check the default parameter value",
				"What happens when y is not provided?",
			},
			EstimatedSeconds: 60,
			Tags:             []string{"functions", "default_parameters"},
			Metadata:         map[string]string{"concept": "function_parameters"},
			Source:           quiz.SourceBank,
		},
		{
			ID:         "py_005",
			Subject:    "Python Programming",
			Topic:      "Data Structures",
			Text:       "Which built-in type stores key-value pairs?",
			Kind:       quiz.KindMultipleChoice,
			Difficulty: quiz.Intermediate,
			Options:    []string{"List", "Dictionary", "Tuple", "Set"},
			Answer:     "Dictionary",
			Explanation: "A dict maps hashable keys to values; the other types hold " +
				"plain sequences or unique elements.",
			Hints:            []string{"Think about lookups by name rather than position"},
			EstimatedSeconds: 30,
			Tags:             []string{"data_structures"},
			Source:           quiz.SourceBank,
		},
		{
			ID:          "py_006",
			Subject:     "Python Programming",
			Topic:       "Comprehensions",
			Text:        "Complete the expression so it squares each value: [x ___ 2 for x in nums]",
			Kind:        quiz.KindCodeCompletion,
			Difficulty:  quiz.Advanced,
			Answer:      "**",
			Explanation: "The ** operator raises x to a power; x ** 2 squares it.",
			Hints:       []string{"It is an arithmetic operator, not a function call"},
			EstimatedSeconds: 45,
			Tags:             []string{"comprehensions", "operators"},
			Source:           quiz.SourceBank,
		},
		{
			ID:          "math_001",
			Subject:     "Mathematics",
			Topic:       "Algebra",
			Text:        "Solve for x: 2x + 5 = 15",
			Kind:        quiz.KindShortAnswer,
			Difficulty:  quiz.Beginner,
			Answer:      "5",
			Explanation: "Subtract 5 from both sides: 2x = 10, then divide by 2: x = 5.",
			Hints: []string{
				"Isolate the variable",
				"Use inverse operations",
			},
			EstimatedSeconds: 90,
			Tags:             []string{"linear_equations", "algebra"},
			Metadata:         map[string]string{"concept": "equation_solving"},
			Source:           quiz.SourceBank,
		},
		{
			ID:               "math_002",
			Subject:          "Mathematics",
			Topic:            "Number Theory",
			Text:             "Every prime number greater than 2 is odd. True or false?",
			Kind:             quiz.KindTrueFalse,
			Difficulty:       quiz.Beginner,
			Answer:           "true",
			Explanation:      "Any even number greater than 2 is divisible by 2, so it cannot be prime.",
			Hints:            []string{"What divides every even number?"},
			EstimatedSeconds: 30,
			Tags:             []string{"primes"},
			Source:           quiz.SourceBank,
		},
		{
			ID:         "sci_001",
			Subject:    "Science",
			Topic:      "Chemistry",
			Text:       "What is the chemical symbol for gold?",
			Kind:       quiz.KindMultipleChoice,
			Difficulty: quiz.Beginner,
			Options:    []string{"Go", "Gd", "Au", "Ag"},
			Answer:     "Au",
			Explanation: "Au comes from aurum, the Latin name for gold. " +
				"Ag is silver.",
			Hints:            []string{"The symbol comes from the Latin name"},
			EstimatedSeconds: 25,
			Tags:             []string{"elements", "periodic_table"},
			Source:           quiz.SourceBank,
		},
		{
			ID:               "sci_002",
			Subject:          "Science",
			Topic:            "Physics",
			Text:             "Sound travels faster in water than in air. True or false?",
			Kind:             quiz.KindTrueFalse,
			Difficulty:       quiz.Beginner,
			Answer:           "true",
			Explanation:      "Sound moves roughly four times faster in water because the medium is denser and stiffer.",
			Hints:            []string{"Think about how whales communicate over long distances"},
			EstimatedSeconds: 30,
			Tags:             []string{"waves", "sound"},
			Source:           quiz.SourceBank,
		},
		{
			ID:               "sci_003",
			Subject:          "Science",
			Topic:            "Biology",
			Text:             "Which organelle produces most of a cell's ATP?",
			Kind:             quiz.KindShortAnswer,
			Difficulty:       quiz.Intermediate,
			Answer:           "mitochondria",
			Explanation:      "Mitochondria run cellular respiration, converting glucose and oxygen into ATP.",
			Hints:            []string{"It has its own DNA and a double membrane"},
			EstimatedSeconds: 40,
			Tags:             []string{"cells", "organelles"},
			Source:           quiz.SourceBank,
		},
		{
			ID:               "math_003",
			Subject:          "Mathematics",
			Topic:            "Geometry",
			Text:             "What is the sum of the interior angles of a triangle, in degrees?",
			Kind:             quiz.KindShortAnswer,
			Difficulty:       quiz.Intermediate,
			Answer:           "180",
			Explanation:      "The interior angles of any triangle always sum to 180 degrees.",
			Hints:            []string{"Tear the corners off and line them up"},
			EstimatedSeconds: 45,
			Tags:             []string{"geometry", "triangles"},
			Source:           quiz.SourceBank,
		},
	}
}
