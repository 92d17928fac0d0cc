package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// maxAdmissionRetries bounds entry number conflict retries before the
// request is rejected with ErrConcurrencyExhausted.
const maxAdmissionRetries = 5

const (
	entryNumberConstraint = "entries_giveaway_number_unique"
	freeEntryIndex        = "idx_entries_free_once"
	winnerUserConstraint  = "winners_giveaway_user_unique"
)

// pgxPool abstracts the pgx pool so storage can run against pgxmock.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type giveawayRepository struct {
	storage *Storage
}

type entryRepository struct {
	storage *Storage
}

type winnerRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Giveaways() repository.GiveawayRepository {
	return &giveawayRepository{storage: s}
}

func (s *Storage) Entries() repository.EntryRepository {
	return &entryRepository{storage: s}
}

func (s *Storage) Winners() repository.WinnerRepository {
	return &winnerRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS giveaways (
            id BIGSERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'draft',
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ NOT NULL,
            max_entries INT,
            additional_entry_price NUMERIC(12,2) NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS entries (
            id BIGSERIAL PRIMARY KEY,
            giveaway_id BIGINT NOT NULL REFERENCES giveaways(id),
            user_id BIGINT NOT NULL,
            entry_number INT NOT NULL,
            entry_type TEXT NOT NULL,
            purchase_price NUMERIC(12,2),
            status TEXT NOT NULL,
            payment_ref TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT entries_giveaway_number_unique UNIQUE (giveaway_id, entry_number)
        )`,
		`CREATE TABLE IF NOT EXISTS winners (
            id BIGSERIAL PRIMARY KEY,
            giveaway_id BIGINT NOT NULL REFERENCES giveaways(id),
            user_id BIGINT NOT NULL,
            entry_id BIGINT NOT NULL REFERENCES entries(id),
            entry_number INT NOT NULL,
            selected_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            claim_status TEXT NOT NULL DEFAULT 'unclaimed',
            CONSTRAINT winners_giveaway_user_unique UNIQUE (giveaway_id, user_id)
        )`,
		`CREATE TABLE IF NOT EXISTS points_transactions (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            type TEXT NOT NULL,
            amount BIGINT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS ledger_heads (
            user_id BIGINT PRIMARY KEY,
            balance BIGINT NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_free_once
            ON entries(giveaway_id, user_id) WHERE entry_type = 'free'`,
		`CREATE INDEX IF NOT EXISTS idx_entries_payment_ref ON entries(payment_ref) WHERE payment_ref IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_entries_giveaway_status ON entries(giveaway_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_points_transactions_user ON points_transactions(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- GiveawayRepository implementation ---

func (r *giveawayRepository) Create(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error) {
	const query = `INSERT INTO giveaways (title, status, start_date, end_date, max_entries, additional_entry_price)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	created := *giveaway
	err := r.storage.pool.QueryRow(ctx, query,
		giveaway.Title, giveaway.Status, giveaway.StartDate, giveaway.EndDate,
		giveaway.MaxEntries, giveaway.AdditionalEntryPrice,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *giveawayRepository) GetByID(ctx context.Context, id int64) (*model.Giveaway, error) {
	const query = `SELECT id, title, status, start_date, end_date, max_entries, additional_entry_price, created_at, updated_at
                   FROM giveaways WHERE id=$1`
	var g model.Giveaway
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Title, &g.Status, &g.StartDate, &g.EndDate,
		&g.MaxEntries, &g.AdditionalEntryPrice, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *giveawayRepository) UpdateStatus(ctx context.Context, id int64, status model.GiveawayStatus) error {
	const query = `UPDATE giveaways SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *giveawayRepository) List(ctx context.Context) ([]model.Giveaway, error) {
	const query = `SELECT id, title, status, start_date, end_date, max_entries, additional_entry_price, created_at, updated_at
                   FROM giveaways ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Giveaway
	for rows.Next() {
		var g model.Giveaway
		if err := rows.Scan(&g.ID, &g.Title, &g.Status, &g.StartDate, &g.EndDate,
			&g.MaxEntries, &g.AdditionalEntryPrice, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- EntryRepository implementation ---

func lockGiveaway(ctx context.Context, tx pgx.Tx, id int64) (*model.Giveaway, error) {
	const query = `SELECT id, title, status, start_date, end_date, max_entries, additional_entry_price, created_at, updated_at
                   FROM giveaways WHERE id=$1 FOR UPDATE`
	var g model.Giveaway
	err := tx.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Title, &g.Status, &g.StartDate, &g.EndDate,
		&g.MaxEntries, &g.AdditionalEntryPrice, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func admissionState(ctx context.Context, tx pgx.Tx, giveawayID, userID int64) (total int, freeUsed bool, err error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE user_id=$2 AND entry_type='free')
                   FROM entries WHERE giveaway_id=$1`
	var freeCount int
	if err = tx.QueryRow(ctx, query, giveawayID, userID).Scan(&total, &freeCount); err != nil {
		return 0, false, err
	}
	return total, freeCount > 0, nil
}

func nextEntryNumber(ctx context.Context, tx pgx.Tx, giveawayID int64) (int, error) {
	const query = `SELECT COALESCE(MAX(entry_number), 0) + 1 FROM entries WHERE giveaway_id=$1`
	var number int
	if err := tx.QueryRow(ctx, query, giveawayID).Scan(&number); err != nil {
		return 0, err
	}
	return number, nil
}

// withAdmissionRetries re-runs the admission transaction on entry number
// conflicts. The giveaway row lock makes conflicts rare; the unique index is
// the backstop when concurrent admissions slip past it.
func (s *Storage) withAdmissionRetries(ctx context.Context, fn func(pgx.Tx) error) error {
	for attempt := 0; attempt < maxAdmissionRetries; attempt++ {
		err := s.WithinTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		if isUniqueViolation(err, freeEntryIndex) {
			return domainErrors.ErrFreeEntryAlreadyUsed
		}
		if isUniqueViolation(err, entryNumberConstraint) {
			continue
		}
		return err
	}
	return domainErrors.ErrConcurrencyExhausted
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func (r *entryRepository) AdmitFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error) {
	var entry model.Entry
	err := r.storage.withAdmissionRetries(ctx, func(tx pgx.Tx) error {
		giveaway, err := lockGiveaway(ctx, tx, giveawayID)
		if err != nil {
			return err
		}
		if !giveaway.AcceptingEntries(time.Now()) {
			return domainErrors.ErrNotAcceptingEntries
		}

		total, freeUsed, err := admissionState(ctx, tx, giveawayID, userID)
		if err != nil {
			return err
		}
		if giveaway.MaxEntries != nil && total+1 > *giveaway.MaxEntries {
			return domainErrors.ErrCapacityExceeded
		}
		if freeUsed {
			return domainErrors.ErrFreeEntryAlreadyUsed
		}

		number, err := nextEntryNumber(ctx, tx, giveawayID)
		if err != nil {
			return err
		}

		const insert = `INSERT INTO entries (giveaway_id, user_id, entry_number, entry_type, status)
                        VALUES ($1, $2, $3, $4, $5)
                        RETURNING id, created_at`
		entry = model.Entry{
			GiveawayID:  giveawayID,
			UserID:      userID,
			EntryNumber: number,
			Type:        model.EntryTypeFree,
			Status:      model.EntryStatusEntered,
		}
		return tx.QueryRow(ctx, insert, giveawayID, userID, number, entry.Type, entry.Status).
			Scan(&entry.ID, &entry.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) AdmitPurchased(ctx context.Context, giveawayID, userID int64, quantity int, price decimal.Decimal, paymentRef string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.storage.withAdmissionRetries(ctx, func(tx pgx.Tx) error {
		entries = entries[:0]

		giveaway, err := lockGiveaway(ctx, tx, giveawayID)
		if err != nil {
			return err
		}
		if !giveaway.AcceptingEntries(time.Now()) {
			return domainErrors.ErrNotAcceptingEntries
		}

		total, freeUsed, err := admissionState(ctx, tx, giveawayID, userID)
		if err != nil {
			return err
		}
		if giveaway.MaxEntries != nil && total+quantity > *giveaway.MaxEntries {
			return domainErrors.ErrCapacityExceeded
		}
		if !freeUsed {
			return domainErrors.ErrFreeEntryRequired
		}

		number, err := nextEntryNumber(ctx, tx, giveawayID)
		if err != nil {
			return err
		}

		const insert = `INSERT INTO entries (giveaway_id, user_id, entry_number, entry_type, purchase_price, status, payment_ref)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)
                        RETURNING id, created_at`
		for i := 0; i < quantity; i++ {
			entryPrice := price
			ref := paymentRef
			entry := model.Entry{
				GiveawayID:    giveawayID,
				UserID:        userID,
				EntryNumber:   number + i,
				Type:          model.EntryTypePurchased,
				PurchasePrice: &entryPrice,
				Status:        model.EntryStatusPending,
				PaymentRef:    &ref,
			}
			if err := tx.QueryRow(ctx, insert,
				giveawayID, userID, entry.EntryNumber, entry.Type, entryPrice, entry.Status, paymentRef,
			).Scan(&entry.ID, &entry.CreatedAt); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) UserSummary(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error) {
	const query = `SELECT COUNT(*),
                          COUNT(*) FILTER (WHERE entry_type='free'),
                          COUNT(*) FILTER (WHERE status='pending')
                   FROM entries WHERE giveaway_id=$1 AND user_id=$2`
	var summary model.EntrySummary
	var freeCount int
	err := r.storage.pool.QueryRow(ctx, query, giveawayID, userID).
		Scan(&summary.TotalEntries, &freeCount, &summary.PendingEntries)
	if err != nil {
		return nil, err
	}
	summary.FreeEntryUsed = freeCount > 0
	return &summary, nil
}

func (r *entryRepository) CountEntries(ctx context.Context, giveawayID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM entries WHERE giveaway_id=$1`
	var total int
	if err := r.storage.pool.QueryRow(ctx, query, giveawayID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *entryRepository) ConfirmPayment(ctx context.Context, paymentRef string) (int, error) {
	const query = `UPDATE entries SET status='entered' WHERE payment_ref=$1 AND status='pending'`
	tag, err := r.storage.pool.Exec(ctx, query, paymentRef)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *entryRepository) CancelPayment(ctx context.Context, paymentRef string) (int, error) {
	const query = `DELETE FROM entries WHERE payment_ref=$1 AND status='pending'`
	tag, err := r.storage.pool.Exec(ctx, query, paymentRef)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *entryRepository) PendingPaymentRefs(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	const query = `SELECT payment_ref FROM entries
                   WHERE status='pending' AND payment_ref IS NOT NULL AND created_at <= $1
                   GROUP BY payment_ref
                   ORDER BY MIN(created_at)
                   LIMIT $2`
	cutoff := time.Now().Add(-olderThan)
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// --- WinnerRepository implementation ---

func (r *winnerRepository) Draw(ctx context.Context, giveawayID int64, pick repository.PickFunc) ([]model.Winner, error) {
	var winners []model.Winner
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		giveaway, err := lockGiveaway(ctx, tx, giveawayID)
		if err != nil {
			return err
		}
		now := time.Now()
		if giveaway.Status != model.GiveawayStatusActive && giveaway.Status != model.GiveawayStatusEnded {
			return domainErrors.ErrGiveawayNotActive
		}
		if now.Before(giveaway.EndDate) {
			return domainErrors.ErrGiveawayNotEnded
		}

		var drawn bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM winners WHERE giveaway_id=$1)`, giveawayID).Scan(&drawn); err != nil {
			return err
		}
		if drawn {
			return domainErrors.ErrWinnersAlreadyDrawn
		}

		const eligibleQuery = `SELECT id, giveaway_id, user_id, entry_number, entry_type, purchase_price, status, payment_ref, created_at
                               FROM entries WHERE giveaway_id=$1 AND status='entered' ORDER BY entry_number`
		rows, err := tx.Query(ctx, eligibleQuery, giveawayID)
		if err != nil {
			return err
		}
		var eligible []model.Entry
		for rows.Next() {
			var e model.Entry
			if err := rows.Scan(&e.ID, &e.GiveawayID, &e.UserID, &e.EntryNumber, &e.Type,
				&e.PurchasePrice, &e.Status, &e.PaymentRef, &e.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			eligible = append(eligible, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(eligible) == 0 {
			return domainErrors.ErrNoEntries
		}

		picked, err := pick(eligible)
		if err != nil {
			return err
		}

		const insert = `INSERT INTO winners (giveaway_id, user_id, entry_id, entry_number, claim_status)
                        VALUES ($1, $2, $3, $4, $5)
                        RETURNING id, selected_at`
		winners = make([]model.Winner, 0, len(picked))
		for _, entry := range picked {
			winner := model.Winner{
				GiveawayID:  giveawayID,
				UserID:      entry.UserID,
				EntryID:     entry.ID,
				EntryNumber: entry.EntryNumber,
				ClaimStatus: model.PrizeClaimStatusUnclaimed,
			}
			if err := tx.QueryRow(ctx, insert,
				giveawayID, entry.UserID, entry.ID, entry.EntryNumber, winner.ClaimStatus,
			).Scan(&winner.ID, &winner.SelectedAt); err != nil {
				if isUniqueViolation(err, winnerUserConstraint) {
					return domainErrors.ErrWinnersAlreadyDrawn
				}
				return err
			}
			winners = append(winners, winner)
		}

		_, err = tx.Exec(ctx, `UPDATE giveaways SET status='completed', updated_at=NOW() WHERE id=$1`, giveawayID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return winners, nil
}

func (r *winnerRepository) ListByGiveaway(ctx context.Context, giveawayID int64) ([]model.Winner, error) {
	const query = `SELECT id, giveaway_id, user_id, entry_id, entry_number, selected_at, claim_status
                   FROM winners WHERE giveaway_id=$1 ORDER BY entry_number`
	rows, err := r.storage.pool.Query(ctx, query, giveawayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Winner
	for rows.Next() {
		var w model.Winner
		if err := rows.Scan(&w.ID, &w.GiveawayID, &w.UserID, &w.EntryID, &w.EntryNumber, &w.SelectedAt, &w.ClaimStatus); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) Append(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error) {
	var record model.PointsTransaction
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const ensureHead = `INSERT INTO ledger_heads (user_id, balance) VALUES ($1, 0)
                            ON CONFLICT (user_id) DO NOTHING`
		if _, err := tx.Exec(ctx, ensureHead, userID); err != nil {
			return err
		}

		const lockHead = `SELECT balance FROM ledger_heads WHERE user_id=$1 FOR UPDATE`
		var balance int64
		if err := tx.QueryRow(ctx, lockHead, userID).Scan(&balance); err != nil {
			return err
		}
		if amount < 0 && balance+amount < 0 {
			return domainErrors.ErrInsufficientBalance
		}

		const insert = `INSERT INTO points_transactions (user_id, type, amount, description)
                        VALUES ($1, $2, $3, $4)
                        RETURNING id, created_at`
		record = model.PointsTransaction{
			UserID:      userID,
			Type:        txType,
			Amount:      amount,
			Description: description,
		}
		if err := tx.QueryRow(ctx, insert, userID, txType, amount, description).
			Scan(&record.ID, &record.CreatedAt); err != nil {
			return err
		}

		const updateHead = `UPDATE ledger_heads SET balance = balance + $2, updated_at=NOW() WHERE user_id=$1`
		_, err := tx.Exec(ctx, updateHead, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ledgerRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM points_transactions WHERE user_id=$1`
	var balance int64
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID int64) ([]model.PointsTransaction, error) {
	const query = `SELECT id, user_id, type, amount, description, created_at
                   FROM points_transactions WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PointsTransaction
	for rows.Next() {
		var tx model.PointsTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ledgerRepository) RebuildBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const sum = `SELECT COALESCE(SUM(amount), 0) FROM points_transactions WHERE user_id=$1`
		if err := tx.QueryRow(ctx, sum, userID).Scan(&balance); err != nil {
			return err
		}
		const upsert = `INSERT INTO ledger_heads (user_id, balance) VALUES ($1, $2)
                        ON CONFLICT (user_id) DO UPDATE SET balance = EXCLUDED.balance, updated_at=NOW()`
		_, err := tx.Exec(ctx, upsert, userID, balance)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
