package api

import (
	"github.com/antgrillet/hbcaix-sync/app/database"
	"github.com/antgrillet/hbcaix-sync/app/tasks"
)

type Handler struct {
	teamRepo  database.TeamRepository
	matchRepo database.MatchRepository
	logRepo   database.SyncLogRepository
	runner    tasks.SyncRunner
	version   string
}
