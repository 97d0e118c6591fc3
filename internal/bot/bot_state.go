package bot

import (
	"github.com/google/uuid"
)

type BotState int

const (
	StateDefault BotState = iota
	// StateAwaitingOrganization waits for an organization id before running
	// PendingCommand.
	StateAwaitingOrganization
)

type UserSession struct {
	State          BotState
	PendingCommand string
	// OrganizationID is remembered so later commands may omit it.
	OrganizationID uuid.UUID
}

func (b *Bot) getOrCreateSession(chatID int64) *UserSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	session, ok := b.userSessions[chatID]
	if !ok {
		session = &UserSession{State: StateDefault}
		b.userSessions[chatID] = session
	}
	return session
}

func (b *Bot) resetSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if session, ok := b.userSessions[chatID]; ok {
		session.State = StateDefault
		session.PendingCommand = ""
	}
}
