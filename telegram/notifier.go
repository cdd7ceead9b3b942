package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

// Event describes one new lead. Kind matches the request type stored in
// the database ("quiz", "contact_form", "callback").
type Event struct {
	Kind      string
	Name      string
	Phone     string
	Email     string
	Message   string
	PromoCode string
	Answers   map[string]string
}

// Notifier pushes lead notifications to the admin chat through the
// Telegram Bot API. It is a pure sink: callers fire it after the lead row
// is committed and only ever log its errors.
type Notifier struct {
	Token  string
	ChatID string
	Client *http.Client

	baseURL string
}

// NewNotifierFromEnv reads TELEGRAM_BOT_TOKEN and TELEGRAM_ADMIN_CHAT_ID.
// With either one missing the notifier is disabled and Notify becomes a
// no-op, so local development works without a bot.
func NewNotifierFromEnv() *Notifier {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	chatID := strings.TrimSpace(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"))
	if token == "" || chatID == "" {
		log.Println("⚠️  Telegram notifications disabled (TELEGRAM_BOT_TOKEN / TELEGRAM_ADMIN_CHAT_ID not set)")
	}
	return &Notifier{
		Token:  token,
		ChatID: chatID,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Enabled() bool {
	return n.Token != "" && n.ChatID != ""
}

// Notify formats and sends the lead message. Returns an error for the
// caller to log; it must never be surfaced to the site visitor.
func (n *Notifier) Notify(ev Event) error {
	if !n.Enabled() {
		return nil
	}

	var text string
	if ev.Kind == "quiz" {
		text = quizMessage(ev)
	} else {
		text = leadMessage(ev)
	}
	return n.sendMessage(text)
}

func quizMessage(ev Event) string {
	answers := "Нет ответов"
	if len(ev.Answers) > 0 {
		questions := make([]string, 0, len(ev.Answers))
		for q := range ev.Answers {
			questions = append(questions, q)
		}
		sort.Strings(questions)
		lines := make([]string, 0, len(questions))
		for _, q := range questions {
			lines = append(lines, fmt.Sprintf("- %s: %s", q, ev.Answers[q]))
		}
		answers = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`🎯 Новая заявка из квиза!

📝 Имя: %s
📱 Телефон: %s
📧 Email: %s
🎲 Промокод: %s

📋 Ответы на вопросы:
%s

Проверьте админ-панель для подробной информации.`,
		ev.Name, ev.Phone, ev.Email, ev.PromoCode, answers)
}

func leadMessage(ev Event) string {
	message := ev.Message
	if message == "" {
		message = "Не указано"
	}
	return fmt.Sprintf(`🏠 Новая заявка!

📝 Имя: %s
📱 Телефон: %s
📧 Email: %s
💬 Сообщение: %s

Проверьте админ-панель для подробной информации.`,
		ev.Name, ev.Phone, ev.Email, message)
}

func (n *Notifier) sendMessage(text string) error {
	endpoint := n.baseURL
	if endpoint == "" {
		endpoint = "https://api.telegram.org"
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", endpoint, n.Token)

	payload, err := json.Marshal(map[string]string{
		"chat_id": n.ChatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram API error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
