package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	ScraperModeHTTP    = "http"
	ScraperModeBrowser = "browser"
	ScraperModeFile    = "file"
)

var errFilePathRequired = errors.New("SCRAPER_FILE_PATH is required in file mode")

type Scraper struct {
	Mode           string        `env:"SCRAPER_MODE" envDefault:"http"`
	URL            string        `env:"SCRAPER_URL" envDefault:"https://www.g2g.com/categories/lost-ark-gold"`
	Region         string        `env:"SCRAPER_REGION" envDefault:"EU Central"`
	FilePath       string        `env:"SCRAPER_FILE_PATH"`
	CardSelector   string        `env:"SCRAPER_CARD_SELECTOR" envDefault:"div.offer-list-item-wrapper, div.q-pa-md"`
	UserAgent      string        `env:"SCRAPER_USER_AGENT"`
	ChromePath     string        `env:"SCRAPER_CHROME_PATH"`
	Schedule       string        `env:"SCRAPER_SCHEDULE" envDefault:"*/30 * * * *"`
	CycleTimeout   time.Duration `env:"SCRAPER_CYCLE_TIMEOUT" envDefault:"2m"`
	PageTimeout    time.Duration `env:"SCRAPER_PAGE_TIMEOUT" envDefault:"60s"`
	ScrollStep     int           `env:"SCRAPER_SCROLL_STEP" envDefault:"400"`
	ScrollInterval time.Duration `env:"SCRAPER_SCROLL_INTERVAL" envDefault:"250ms"`
	MaxScrolls     int           `env:"SCRAPER_MAX_SCROLLS" envDefault:"200"`
	RetryInterval  time.Duration `env:"SCRAPER_RETRY_INTERVAL" envDefault:"2s"`
}

func (s Scraper) validate() error {
	switch s.Mode {
	case ScraperModeHTTP, ScraperModeBrowser:
		return nil
	case ScraperModeFile:
		if s.FilePath == "" {
			return errFilePathRequired
		}

		return nil
	default:
		return fmt.Errorf("unknown SCRAPER_MODE %q", s.Mode) //nolint:err113
	}
}
