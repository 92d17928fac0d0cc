package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Giveaways() GiveawayRepository
	Entries() EntryRepository
	Winners() WinnerRepository
	Ledger() LedgerRepository
}
