package repositories

import (
	"context"
	"database/sql"
	"errors"

	"qa-forum/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VotePtr constrains P to be a pointer to the vote row type V.
type VotePtr[V any] interface {
	*V
	models.Vote
}

// VoteLedger keeps one vote per (profile, target) pair and applies each
// vote's contribution to the rating column of the target table. Every method
// assumes it runs inside the caller's transaction; see WithTx.
type VoteLedger[V any, P VotePtr[V]] struct {
	db           *gorm.DB
	kind         string
	targetTable  string
	targetColumn string
}

type (
	QuestionVoteLedger = VoteLedger[models.QuestionVote, *models.QuestionVote]
	AnswerVoteLedger   = VoteLedger[models.AnswerVote, *models.AnswerVote]
)

func NewQuestionVoteLedger(db *gorm.DB) *QuestionVoteLedger {
	return &QuestionVoteLedger{
		db:           db,
		kind:         "question",
		targetTable:  "questions",
		targetColumn: "question_id",
	}
}

func NewAnswerVoteLedger(db *gorm.DB) *AnswerVoteLedger {
	return &AnswerVoteLedger{
		db:           db,
		kind:         "answer",
		targetTable:  "answers",
		targetColumn: "answer_id",
	}
}

func (l *VoteLedger[V, P]) WithTx(tx *gorm.DB) *VoteLedger[V, P] {
	ledger := *l
	ledger.db = tx
	return &ledger
}

// Kind names the target type, "question" or "answer".
func (l *VoteLedger[V, P]) Kind() string {
	return l.kind
}

func (l *VoteLedger[V, P]) pair(targetID, voterID uint) *gorm.DB {
	return l.db.Where(l.targetColumn+" = ? AND profile_id = ?", targetID, voterID)
}

func (l *VoteLedger[V, P]) Find(ctx context.Context, targetID, voterID uint) (P, error) {
	var vote V
	err := l.pair(targetID, voterID).WithContext(ctx).Take(&vote).Error
	if err != nil {
		var zero P
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, models.NewNotFound("%s vote not found", l.kind)
		}
		return zero, err
	}
	return P(&vote), nil
}

// Rating reads the current rating of the target.
func (l *VoteLedger[V, P]) Rating(ctx context.Context, targetID uint) (int, error) {
	return l.scanRating(l.db.WithContext(ctx).Table(l.targetTable), targetID)
}

// LockTarget takes a row lock on the target so that votes on the same target
// are serialized until the transaction ends. Reads of a vote that decide what
// to do with it belong after this call.
func (l *VoteLedger[V, P]) LockTarget(ctx context.Context, targetID uint) (int, error) {
	return l.scanRating(
		l.db.WithContext(ctx).Table(l.targetTable).Clauses(clause.Locking{Strength: "UPDATE"}),
		targetID,
	)
}

func (l *VoteLedger[V, P]) scanRating(db *gorm.DB, targetID uint) (int, error) {
	var rating int
	err := db.Select("rating").Where("id = ?", targetID).Row().Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.NewNotFound("%s %d not found", l.kind, targetID)
	}
	return rating, err
}

func (l *VoteLedger[V, P]) adjust(ctx context.Context, targetID uint, delta int) (int, error) {
	err := l.db.WithContext(ctx).
		Table(l.targetTable).
		Where("id = ?", targetID).
		UpdateColumn("rating", gorm.Expr("rating + ?", delta)).Error
	if err != nil {
		return 0, err
	}
	return l.Rating(ctx, targetID)
}

// Cast inserts a new vote and applies +1 or -1 to the target. A second vote
// for the same pair is a constraint violation; change polarity with Toggle.
func (l *VoteLedger[V, P]) Cast(ctx context.Context, vote P) (int, error) {
	if _, err := l.LockTarget(ctx, vote.TargetID()); err != nil {
		return 0, err
	}

	var count int64
	err := l.pair(vote.TargetID(), vote.VoterID()).WithContext(ctx).Model(new(V)).Count(&count).Error
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, models.NewConflict("profile %d already voted on %s %d", vote.VoterID(), l.kind, vote.TargetID())
	}

	if err := l.db.WithContext(ctx).Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, models.NewConflict("profile %d already voted on %s %d", vote.VoterID(), l.kind, vote.TargetID())
		}
		return 0, err
	}

	return l.adjust(ctx, vote.TargetID(), models.RatingDelta(vote.Liked()))
}

// Toggle flips the polarity of an existing vote. The old contribution is
// reversed and the new one applied in a single ±2 step. The stored row is
// re-read under the target lock; when it no longer has the polarity vote was
// read with, another toggle already won and the call changes nothing.
func (l *VoteLedger[V, P]) Toggle(ctx context.Context, vote P) (int, error) {
	if _, err := l.LockTarget(ctx, vote.TargetID()); err != nil {
		return 0, err
	}

	stored, err := l.Find(ctx, vote.TargetID(), vote.VoterID())
	if err != nil {
		return 0, err
	}
	if stored.Liked() != vote.Liked() {
		*vote = *stored
		return l.Rating(ctx, vote.TargetID())
	}

	res := l.db.WithContext(ctx).
		Model(new(V)).
		Where(l.targetColumn+" = ? AND profile_id = ? AND is_like = ?", vote.TargetID(), vote.VoterID(), stored.Liked()).
		Update("is_like", !stored.Liked())
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFound("%s vote not found", l.kind)
	}

	stored.Flip()
	*vote = *stored
	return l.adjust(ctx, vote.TargetID(), 2*models.RatingDelta(stored.Liked()))
}

// Delete removes a vote and reverses its contribution. The reversal uses the
// polarity stored at delete time, not the one vote was read with.
func (l *VoteLedger[V, P]) Delete(ctx context.Context, vote P) (int, error) {
	if _, err := l.LockTarget(ctx, vote.TargetID()); err != nil {
		return 0, err
	}

	stored, err := l.Find(ctx, vote.TargetID(), vote.VoterID())
	if err != nil {
		return 0, err
	}

	res := l.db.WithContext(ctx).Delete(stored)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFound("%s vote not found", l.kind)
	}

	return l.adjust(ctx, stored.TargetID(), -models.RatingDelta(stored.Liked()))
}

// DeleteByTargets drops every vote on the given targets without touching
// ratings. Use it only when the targets are deleted in the same transaction.
func (l *VoteLedger[V, P]) DeleteByTargets(ctx context.Context, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return l.db.WithContext(ctx).
		Where(l.targetColumn+" IN ?", targetIDs).
		Delete(new(V)).Error
}

// RetractByVoter deletes every vote the profile cast, reversing each
// contribution on its target. Targets are locked in id order.
func (l *VoteLedger[V, P]) RetractByVoter(ctx context.Context, voterID uint) error {
	var votes []V
	err := l.db.WithContext(ctx).
		Where("profile_id = ?", voterID).
		Order(l.targetColumn + " asc").
		Find(&votes).Error
	if err != nil {
		return err
	}

	for i := range votes {
		if _, err := l.Delete(ctx, P(&votes[i])); err != nil {
			return err
		}
	}
	return nil
}

// CountByPolarity returns how many likes and dislikes the target has.
func (l *VoteLedger[V, P]) CountByPolarity(ctx context.Context, targetID uint) (likes, dislikes int64, err error) {
	count := func(isLike bool, n *int64) error {
		return l.db.WithContext(ctx).
			Model(new(V)).
			Where(l.targetColumn+" = ? AND is_like = ?", targetID, isLike).
			Count(n).Error
	}
	if err = count(true, &likes); err != nil {
		return 0, 0, err
	}
	err = count(false, &dislikes)
	return likes, dislikes, err
}
