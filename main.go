package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/attrition_dashboard/config"
	"github.com/pivolan/attrition_dashboard/dashboard"
	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/plot"
)

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	s, err := newServer(cfg)
	if err != nil {
		log.Fatalln("cannot connect to warehouse", err)
	}

	if cfg.FontPath != "" {
		font, err := plot.LoadFont(cfg.FontPath)
		if err != nil {
			log.Printf("font not loaded, charts use the default font: %v", err)
		} else {
			s.plotOpts.Font = font
		}
	}

	printReport(s)

	if cfg.TgToken != "" {
		bot, err := tgbotapi.NewBotAPI(cfg.TgToken)
		if err != nil {
			log.Fatal("tg error", err)
		}
		log.Printf("Authorized on account %s", bot.Self.UserName)
		go func() {
			if err := runBot(bot, s); err != nil {
				log.Printf("bot stopped: %v", err)
			}
		}()
	}

	fmt.Println("listen on: http://localhost" + cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, newRouter(s)); err != nil {
		log.Fatalln("Error starting server:", err)
	}
}

func newServer(cfg *config.Config) (*server, error) {
	if !cfg.UseWarehouse() {
		return &server{
			dataName: filepath.Base(cfg.DataPath),
			load: func() (*dataset.Table, error) {
				return dataset.Load(cfg.DataPath)
			},
		}, nil
	}

	db, err := gorm.Open(mysql.Open(cfg.DbDsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	fmt.Println("connected warehouse")
	return &server{
		dataName: cfg.WarehouseTable,
		load: func() (*dataset.Table, error) {
			return dataset.LoadWarehouse(db, cfg.WarehouseTable)
		},
	}, nil
}

func printReport(s *server) {
	view, _, message := s.buildView()
	if message != "" {
		fmt.Println(message)
		return
	}
	fmt.Println(dashboard.RenderText(view))
}
