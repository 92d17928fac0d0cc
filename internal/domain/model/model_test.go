package model

import (
	"testing"
	"time"
)

func TestGiveawayStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   GiveawayStatus
		value string
	}{
		{"draft", GiveawayStatusDraft, "draft"},
		{"upcoming", GiveawayStatusUpcoming, "upcoming"},
		{"active", GiveawayStatusActive, "active"},
		{"ended", GiveawayStatusEnded, "ended"},
		{"completed", GiveawayStatusCompleted, "completed"},
		{"cancelled", GiveawayStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestGiveawayAcceptingEntries(t *testing.T) {
	now := time.Now()
	g := Giveaway{
		Status:    GiveawayStatusActive,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	if !g.AcceptingEntries(now) {
		t.Fatal("expected active giveaway within window to accept entries")
	}

	g.Status = GiveawayStatusDraft
	if g.AcceptingEntries(now) {
		t.Fatal("draft giveaway must not accept entries")
	}

	g.Status = GiveawayStatusActive
	if g.AcceptingEntries(now.Add(2 * time.Hour)) {
		t.Fatal("giveaway past end date must not accept entries")
	}
	if g.AcceptingEntries(now.Add(-2 * time.Hour)) {
		t.Fatal("giveaway before start date must not accept entries")
	}
	if g.AcceptingEntries(g.EndDate) {
		t.Fatal("end date is exclusive")
	}
}

func TestGiveawayDrawable(t *testing.T) {
	now := time.Now()
	g := Giveaway{
		Status:    GiveawayStatusActive,
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(-time.Hour),
	}
	if !g.Drawable(now) {
		t.Fatal("active giveaway past end date should be drawable")
	}

	g.Status = GiveawayStatusEnded
	if !g.Drawable(now) {
		t.Fatal("ended giveaway should be drawable")
	}

	g.Status = GiveawayStatusCompleted
	if g.Drawable(now) {
		t.Fatal("completed giveaway must not be drawable again")
	}

	g.Status = GiveawayStatusActive
	g.EndDate = now.Add(time.Hour)
	if g.Drawable(now) {
		t.Fatal("giveaway must not be drawable before end date")
	}
}

func TestEntryTypeAndStatusValues(t *testing.T) {
	cases := []struct {
		got   string
		value string
	}{
		{string(EntryTypeFree), "free"},
		{string(EntryTypePurchased), "purchased"},
		{string(EntryStatusPending), "pending"},
		{string(EntryStatusEntered), "entered"},
		{string(TransactionTypeEarned), "earned"},
		{string(TransactionTypeSpent), "spent"},
		{string(TransactionTypePurchased), "purchased"},
	}

	for _, tc := range cases {
		if tc.got != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.got)
		}
	}
}
