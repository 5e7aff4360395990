package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/config"
	"github.com/danken4445/hospital-management/internal/domain/models"
	"github.com/danken4445/hospital-management/internal/service/dashboard"
	"github.com/danken4445/hospital-management/internal/service/reporting"
)

const replyTimeout = 30 * time.Second

// CommandService describes the operations the webhook handler can perform.
type CommandService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
}

// Replier sends a text reply to a WhatsApp user.
type Replier interface {
	Reply(ctx context.Context, to, text string) error
}

// DigestBuilder renders the hospital-wide digest.
type DigestBuilder interface {
	BuildDigest(ctx context.Context, timeline string) (string, models.Dashboard)
}

// Dashboards is the department surface commands need.
type Dashboards interface {
	Department(ctx context.Context, name, timeline string) (models.Dashboard, error)
	Departments(ctx context.Context) ([]string, error)
	Timelines() []models.TimelineOption
}

// MetaWhatsAppService answers digest requests sent to the hospital's WhatsApp number.
type MetaWhatsAppService struct {
	cfg             config.WhatsAppConfig
	replier         Replier
	reports         DigestBuilder
	dashboards      Dashboards
	sessions        *SessionManager
	allowed         map[string]struct{}
	defaultTimeline string
	logger          *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. Only the digest recipient and
// cfg.AllowedSenders may issue commands.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, replier Replier, reports DigestBuilder, dashboards Dashboards, defaultTimeline string, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedSenders)+1)
	for _, sender := range append([]string{cfg.DigestRecipient}, cfg.AllowedSenders...) {
		if sender = normalizePhone(sender); sender != "" {
			allowed[sender] = struct{}{}
		}
	}

	return &MetaWhatsAppService{
		cfg:             cfg,
		replier:         replier,
		reports:         reports,
		dashboards:      dashboards,
		sessions:        NewSessionManager(),
		allowed:         allowed,
		defaultTimeline: defaultTimeline,
		logger:          logger,
	}
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook answers every inbound message in the payload and returns the first failure.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	if _, ok := s.allowed[normalizePhone(msg.From)]; !ok {
		s.logger.Warn("ignoring message from unknown sender", zap.String("from", msg.From))
		return nil
	}

	text := extractMessageText(msg)
	if text == "" {
		s.logger.Debug("ignoring message without text", zap.String("type", msg.Type))
		return nil
	}

	cmd := models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	return s.replier.Reply(ctx, msg.From, s.answer(ctx, msg.From, cmd))
}

func (s *MetaWhatsAppService) answer(ctx context.Context, from string, cmd models.Command) string {
	switch cmd.Type {
	case models.CommandDigest:
		timeline, _ := s.splitTimeline(cmd.Args)
		text, _ := s.reports.BuildDigest(ctx, s.rememberTimeline(from, timeline))
		return text

	case models.CommandDepartment:
		timeline, rest := s.splitTimeline(cmd.Args)
		name := strings.Join(rest, " ")
		if name == "" {
			return "Send the department name, e.g. dept ICU week."
		}
		d, err := s.dashboards.Department(ctx, name, s.rememberTimeline(from, timeline))
		if errors.Is(err, dashboard.ErrUnknownDepartment) {
			return fmt.Sprintf("Unknown department %q. Send departments for the list.", name)
		}
		if err != nil {
			s.logger.Error("department digest failed", zap.String("department", name), zap.Error(err))
			return "The department digest is unavailable right now."
		}
		return reporting.FormatDigest(d)

	case models.CommandDepartments:
		names, err := s.dashboards.Departments(ctx)
		if err != nil {
			s.logger.Error("listing departments failed", zap.Error(err))
			return "The department list is unavailable right now."
		}
		if len(names) == 0 {
			return "No departments found."
		}
		return "Departments:\n" + strings.Join(names, "\n")
	}

	return s.help()
}

// splitTimeline pulls a recognised timeline value out of args.
func (s *MetaWhatsAppService) splitTimeline(args []string) (string, []string) {
	var (
		timeline string
		rest     []string
	)
	for _, arg := range args {
		if timeline == "" && s.isTimeline(arg) {
			timeline = strings.ToLower(arg)
			continue
		}
		rest = append(rest, arg)
	}
	return timeline, rest
}

func (s *MetaWhatsAppService) isTimeline(value string) bool {
	for _, option := range s.dashboards.Timelines() {
		if strings.EqualFold(option.Value, value) {
			return true
		}
	}
	return false
}

// rememberTimeline returns timeline, or the sender's last choice when it is empty.
func (s *MetaWhatsAppService) rememberTimeline(from, timeline string) string {
	if timeline == "" {
		if session := s.sessions.GetSession(from); session.Timeline != "" {
			return session.Timeline
		}
		return s.defaultTimeline
	}
	s.sessions.UpdateSession(from, Session{Timeline: timeline, LastCommand: time.Now()})
	return timeline
}

func (s *MetaWhatsAppService) help() string {
	values := make([]string, 0, len(s.dashboards.Timelines()))
	for _, option := range s.dashboards.Timelines() {
		values = append(values, option.Value)
	}
	return "Commands:\n" +
		"digest [timeline] - hospital summary\n" +
		"dept <name> [timeline] - one department\n" +
		"departments - list departments\n" +
		"Timelines: " + strings.Join(values, ", ")
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return msg.Text.Body
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}

func normalizePhone(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+")
}
