package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/attrition_dashboard/dashboard"
	"github.com/pivolan/attrition_dashboard/domain/models"
	"github.com/pivolan/attrition_dashboard/plot"
)

// Charts at or above this size are sent as documents.
const maxSizePhoto = 150000

func sendCharts(bot *tgbotapi.BotAPI, s *server, chatID int64) {
	view, _, message := s.buildView()
	if message != "" {
		bot.Send(tgbotapi.NewMessage(chatID, message))
		return
	}
	for _, series := range view.Report.Series {
		graph, err := plot.Draw(series, s.plotOpts)
		if err != nil {
			log.Printf("error drawing chart %s for %s: %v", series.ID, view.RenderID, err)
			continue
		}
		sendGraph(bot, chatID, series, graph)
	}
}

func sendGraph(bot *tgbotapi.BotAPI, chatID int64, series models.Series, graph []byte) {
	pngFile := tgbotapi.FileBytes{
		Name:  dashboard.ChartFileName(series, time.Now()),
		Bytes: graph,
	}

	var err error
	if len(graph) < maxSizePhoto {
		docMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		docMsg.Caption = chartCaption(series)
		_, err = bot.Send(docMsg)
	} else {
		docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		docMsg.Caption = chartCaption(series)
		_, err = bot.Send(docMsg)
	}
	if err != nil {
		log.Printf("error sending chart %s to %d: %v", series.ID, chatID, err)
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("차트를 보내지 못했습니다: %s", series.Title)))
	}
}

func chartCaption(series models.Series) string {
	switch series.Kind {
	case models.ChartPie:
		return fmt.Sprintf("%s\n%s별 비중", series.Title, series.XLabel)
	case models.ChartLine:
		return fmt.Sprintf("%s\n%s에 따른 %s", series.Title, series.XLabel, series.YLabel)
	default:
		return fmt.Sprintf("%s\n%s별 %s", series.Title, series.XLabel, series.YLabel)
	}
}
