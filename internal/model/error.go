package model

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")

	ErrSourceNotFound   = errors.New("source not found")
	ErrSourceUnreadable = errors.New("source unreadable")
	ErrNoSheets         = errors.New("source has no sheets")

	ErrSyncInProgress = errors.New("sync in progress")
	ErrRateLimited    = errors.New("rate limited")
	ErrDownloadFailed = errors.New("download failed")
)
