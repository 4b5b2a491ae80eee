package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/convo-search/internal"
)

var sqliteExtensions = map[string]bool{
	".db":     true,
	".sqlite": true,
	".vscdb":  true,
}

// openStore opens the archive at path. Database files are read through
// SQLite; anything else is treated as a file archive directory.
func openStore(path string) (internal.ConversationStore, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("no archive configured (use --archive or set archive in the config file)")
	}

	if sqliteExtensions[strings.ToLower(filepath.Ext(path))] {
		if _, err := os.Stat(path); err != nil {
			return nil, nil, &internal.StoreError{Path: path, Op: "open", Err: err}
		}
		store, err := internal.OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		internal.LogDebug("Opened SQLite archive %s", path)
		return store, func() {
			if err := store.Close(); err != nil {
				internal.LogWarn("Failed to close archive: %v", err)
			}
		}, nil
	}

	internal.LogDebug("Opened file archive %s", path)
	return internal.NewFileStore(path), func() {}, nil
}

// loadFilters builds search filters from flag values
func loadFilters(query, language, dateRange string, topics []string, minMessages int) (internal.SearchFilters, error) {
	filters := internal.DefaultFilters()
	filters.Query = query

	lang, err := internal.ParseLanguage(language)
	if err != nil {
		return filters, err
	}
	filters.Language = lang

	dr, err := internal.ParseDateRange(dateRange)
	if err != nil {
		return filters, err
	}
	filters.DateRange = dr

	if minMessages < 0 {
		return filters, fmt.Errorf("min-messages must not be negative")
	}
	filters.MinMessages = minMessages
	filters.Topics = topics
	return filters, nil
}
