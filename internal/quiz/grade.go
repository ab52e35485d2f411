package quiz

import "github.com/studyhall/studyhall-lms/internal/catalog"

// Result is the computed outcome of one quiz attempt.
type Result struct {
	CorrectCount   int  `json:"correct_answers"`
	TotalQuestions int  `json:"total_questions"`
	ScorePercent   int  `json:"score"`
	Passed         bool `json:"passed"`
}

// Score grades an answer set against a quiz definition. It is pure and
// deterministic: same quiz, same answers, same result.
//
// answers maps question id → chosen option id. A missing answer counts as
// incorrect, as does an option id that does not belong to the question.
// Scoring is single-choice: a question is correct exactly when its chosen
// option carries the correct flag. ScorePercent uses truncating integer
// division; an empty quiz scores 0, which still passes when the passing
// score is zero or negative.
func Score(q catalog.Quiz, answers map[string]string) Result {
	total := len(q.Questions)
	correct := 0
	for _, qu := range q.Questions {
		chosen, ok := answers[qu.ID]
		if !ok {
			continue
		}
		for _, o := range qu.Options {
			if o.ID == chosen {
				if o.IsCorrect {
					correct++
				}
				break
			}
		}
	}
	pct := 0
	if total > 0 {
		pct = correct * 100 / total
	}
	return Result{
		CorrectCount:   correct,
		TotalQuestions: total,
		ScorePercent:   pct,
		Passed:         pct >= q.PassingScore,
	}
}
