package main

import (
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/attrition_dashboard/dashboard"
)

const welcomeText = `안녕하세요! 👋

퇴직율 대시보드 봇입니다.

명령어:
/stats - 핵심 지표와 집계 표
/charts - 집계 차트 이미지
/start - 도움말`

func runBot(bot *tgbotapi.BotAPI, s *server) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		return err
	}
	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		go handleText(bot, s, update)
	}
	return nil
}

func handleText(bot *tgbotapi.BotAPI, s *server, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	if update.Message.Command() == "charts" {
		sendCharts(bot, s, chatID)
		return
	}
	for _, text := range commandReplies(s, update.Message.Command()) {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := bot.Send(msg); err != nil {
			log.Printf("error sending message to %d: %v", chatID, err)
			return
		}
	}
}

// commandReplies returns the HTML messages answering a text command. Every
// table goes in its own message to stay under the Telegram size limit.
func commandReplies(s *server, command string) []string {
	if command != "stats" {
		return []string{welcomeText}
	}
	view, _, message := s.buildView()
	if message != "" {
		return []string{html.EscapeString(message)}
	}
	replies := []string{"<b>" + dashboard.PageTitle + "</b>\n" + pre(dashboard.KPITable(view))}
	for _, series := range view.Report.Series {
		replies = append(replies, pre(dashboard.SeriesTable(series)))
	}
	for _, skipped := range view.Report.Skipped {
		replies = append(replies, html.EscapeString(skipped.ID+": "+skipped.Reason))
	}
	return replies
}

func pre(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}
