package bot

import (
	"context"
	"fmt"
	"strings"

	"care-compliance/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	commandAlerts    = "alerts"
	commandRatios    = "ratios"
	commandChecklist = "checklist"
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	chatID := message.Chat.ID
	b.log.Debug("message", zap.Int64("chat_id", chatID), zap.String("username", message.From.UserName), zap.String("text", message.Text))

	// /start is open to everyone so an operator can learn the chat id to
	// put into ADMIN_IDS.
	if message.IsCommand() && message.Command() == "start" {
		b.handleStartCommand(chatID)
		return
	}
	if !b.isAdmin(chatID, int64(message.From.ID)) {
		b.sendError(chatID, "⛔ This bot only answers configured admin chats.")
		return
	}

	session := b.getOrCreateSession(chatID)

	if message.IsCommand() {
		command := message.Command()
		arg := strings.TrimSpace(message.CommandArguments())
		if arg != "" {
			orgID, ok := parseOrganization(arg)
			if !ok {
				b.sendError(chatID, "❌ Organization id must be a UUID.")
				return
			}
			b.mu.Lock()
			session.OrganizationID = orgID
			b.mu.Unlock()
		}

		switch command {
		case "help":
			b.handleStartCommand(chatID)
		case "org":
			if arg != "" {
				b.resetSession(chatID)
				b.sendMessage(chatID, "✅ Organization set.")
				return
			}
			b.handleSwitchOrganization(chatID, session)
		case commandAlerts, commandRatios, commandChecklist:
			b.runCommand(ctx, chatID, session, command)
		default:
			b.sendMessage(chatID, "Unknown command. Try /alerts, /ratios or /checklist.")
		}
		return
	}

	b.mu.RLock()
	state := session.State
	b.mu.RUnlock()
	if state == StateAwaitingOrganization {
		b.handleOrganizationInput(ctx, chatID, session, message.Text)
		return
	}

	switch message.Text {
	case buttonAlerts:
		b.runCommand(ctx, chatID, session, commandAlerts)
	case buttonRatios:
		b.runCommand(ctx, chatID, session, commandRatios)
	case buttonChecklist:
		b.runCommand(ctx, chatID, session, commandChecklist)
	case buttonSwitchOrg:
		b.handleSwitchOrganization(chatID, session)
	default:
		b.handleStartCommand(chatID)
	}
}

func (b *Bot) isAdmin(chatID, userID int64) bool {
	return b.adminIDs[chatID] || b.adminIDs[userID]
}

func (b *Bot) handleStartCommand(chatID int64) {
	text := fmt.Sprintf("Care compliance bot.\n\n"+
		"/alerts <org-id> - expiring credentials and ratio problems\n"+
		"/ratios <org-id> - staff to child ratio per classroom\n"+
		"/checklist <org-id> - regulatory checklist score\n"+
		"/org - switch organization\n\n"+
		"Your chat id is %d.", chatID)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createMainKeyboard()
	b.send(msg)
}

func (b *Bot) handleSwitchOrganization(chatID int64, session *UserSession) {
	b.mu.Lock()
	session.State = StateAwaitingOrganization
	session.PendingCommand = ""
	b.mu.Unlock()
	b.sendMessage(chatID, "Send the organization id.")
}

func (b *Bot) handleOrganizationInput(ctx context.Context, chatID int64, session *UserSession, text string) {
	orgID, ok := parseOrganization(strings.TrimSpace(text))
	if !ok {
		b.sendError(chatID, "❌ That is not a valid organization id. Send a UUID.")
		return
	}

	b.mu.Lock()
	session.OrganizationID = orgID
	pending := session.PendingCommand
	b.mu.Unlock()
	b.resetSession(chatID)

	if pending == "" {
		b.sendMessage(chatID, "✅ Organization set.")
		return
	}
	b.runCommand(ctx, chatID, session, pending)
}

// runCommand executes command for the session's organization, asking for one
// first when none is known.
func (b *Bot) runCommand(ctx context.Context, chatID int64, session *UserSession, command string) {
	b.mu.RLock()
	orgID := session.OrganizationID
	b.mu.RUnlock()

	if orgID == uuid.Nil {
		b.mu.Lock()
		session.State = StateAwaitingOrganization
		session.PendingCommand = command
		b.mu.Unlock()
		b.sendMessage(chatID, "Which organization? Send its id.")
		return
	}

	var (
		text string
		err  error
	)
	switch command {
	case commandAlerts:
		text, err = b.AlertService.Digest(ctx, orgID)
	case commandRatios, commandChecklist:
		var dashboard *service.DaycareDashboard
		dashboard, err = b.DaycareService.Dashboard(ctx, orgID)
		if err == nil && command == commandRatios {
			text = formatRatios(dashboard)
		} else if err == nil {
			text = formatChecklist(dashboard)
		}
	}
	if err != nil {
		b.log.Error("command failed", zap.String("command", command), zap.Stringer("organization_id", orgID), zap.Error(err))
		b.sendError(chatID, "❌ Could not load data for that organization.")
		return
	}
	b.sendMessage(chatID, text)
}

func formatRatios(d *service.DaycareDashboard) string {
	if len(d.Ratios) == 0 {
		return "No classrooms configured."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Ratios: %d of %d classrooms in ratio\n", d.RatiosMet, len(d.Ratios))
	for _, r := range d.Ratios {
		mark := "✅"
		if !r.Met {
			mark = "⚠️"
		}
		requirement := "no requirement"
		if r.Classroom.RatioRequirement != nil {
			requirement = *r.Classroom.RatioRequirement
		}
		if !r.HasHeadcount {
			fmt.Fprintf(&sb, "%s %s (%s): no headcount\n", mark, r.Classroom.Name, requirement)
			continue
		}
		fmt.Fprintf(&sb, "%s %s (%s): %d staff, %d children\n", mark, r.Classroom.Name, requirement, r.StaffCount, r.StudentCount)
	}
	return sb.String()
}

func formatChecklist(d *service.DaycareDashboard) string {
	overall := d.Compliance.Overall
	if overall.Vacuous {
		return "Checklist: no items configured (reported as 100%)."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Checklist: %d%% (%d of %d compliant)\n", overall.Score, overall.Compliant, overall.Total)
	for _, c := range d.Compliance.Categories {
		fmt.Fprintf(&sb, "• %s: %d%% (%d pending, %d expired, %d missing)\n", c.Category, c.Score, c.Pending, c.Expired, c.Missing)
	}
	return sb.String()
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, text)
}
