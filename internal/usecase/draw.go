package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// DrawUseCase selects giveaway winners uniformly at random.
type DrawUseCase struct {
	winners repository.WinnerRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDrawUseCase constructs DrawUseCase with a time-seeded random source.
func NewDrawUseCase(winners repository.WinnerRepository) *DrawUseCase {
	return NewDrawUseCaseWithSource(winners, rand.NewSource(time.Now().UnixNano()))
}

// NewDrawUseCaseWithSource allows deterministic draws in tests.
func NewDrawUseCaseWithSource(winners repository.WinnerRepository, source rand.Source) *DrawUseCase {
	return &DrawUseCase{winners: winners, rng: rand.New(source)}
}

// Draw runs the one-time winner selection for a giveaway. The requested count
// is clamped to [1, MaxWinnersPerDraw] and further bounded by the number of
// distinct users holding entered entries. Eligibility and atomicity are
// enforced by the repository transaction; re-drawing is rejected.
func (u *DrawUseCase) Draw(ctx context.Context, giveawayID int64, requested int) ([]model.Winner, error) {
	count := ClampWinnerCount(requested)
	return u.winners.Draw(ctx, giveawayID, u.pick(count))
}

// Winners lists previously drawn winners.
func (u *DrawUseCase) Winners(ctx context.Context, giveawayID int64) ([]model.Winner, error) {
	return u.winners.ListByGiveaway(ctx, giveawayID)
}

// pick samples entries without replacement, keeping at most one entry per
// user so nobody wins twice in one draw.
func (u *DrawUseCase) pick(count int) repository.PickFunc {
	return func(entries []model.Entry) ([]model.Entry, error) {
		shuffled := make([]model.Entry, len(entries))
		copy(shuffled, entries)

		u.mu.Lock()
		u.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		u.mu.Unlock()

		seen := make(map[int64]struct{}, count)
		picked := make([]model.Entry, 0, count)
		for _, entry := range shuffled {
			if _, dup := seen[entry.UserID]; dup {
				continue
			}
			seen[entry.UserID] = struct{}{}
			picked = append(picked, entry)
			if len(picked) == count {
				break
			}
		}
		return picked, nil
	}
}
