package services

import (
	"context"

	"qa-forum/models"
	"qa-forum/repositories"
)

// deleteQuestions removes questions with their answers and every vote on
// them. The ratings of the deleted rows go with them, so votes are dropped
// without reversal. Tag ratings are left untouched.
func deleteQuestions(ctx context.Context, tx *repositories.Store, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}

	answerIDs, err := tx.Answers.IDsByQuestions(ctx, questionIDs)
	if err != nil {
		return err
	}
	if err := tx.AnswerVotes.DeleteByTargets(ctx, answerIDs); err != nil {
		return err
	}
	if err := tx.Answers.DeleteByQuestions(ctx, questionIDs); err != nil {
		return err
	}
	if err := tx.QuestionVotes.DeleteByTargets(ctx, questionIDs); err != nil {
		return err
	}
	for _, id := range questionIDs {
		if err := tx.Questions.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// deleteAnswer removes one answer and its votes and decrements the parent's
// answer count. The answer is re-read under the question lock, so a copy that
// another transaction already deleted is reported as NotFound.
func deleteAnswer(ctx context.Context, tx *repositories.Store, answer *models.Answer) error {
	if _, err := tx.Questions.LockByID(ctx, answer.QuestionID); err != nil {
		return notFoundOr(err, "question %d not found", answer.QuestionID)
	}
	if _, err := tx.Answers.GetByID(ctx, answer.ID); err != nil {
		return notFoundOr(err, "answer %d not found", answer.ID)
	}
	if err := tx.AnswerVotes.DeleteByTargets(ctx, []uint{answer.ID}); err != nil {
		return err
	}
	if err := tx.Answers.Delete(ctx, answer.ID); err != nil {
		return err
	}
	return tx.Questions.AddAnswerCount(ctx, answer.QuestionID, -1)
}
