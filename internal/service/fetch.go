package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// LoadSource reads the input workbook bytes from a local path or, when the
// configured source is an http(s) URL, from the share the repair step
// publishes to. Either way the read happens before any store mutation, so a
// missing source aborts with the prior dataset untouched. The fetch is a
// single attempt: re-running the job is the retry mechanism.
func LoadSource(source string, logger *zap.Logger) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetchWorkbook(source, logger)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", source, err)
	}
	return data, nil
}

func fetchWorkbook(url string, logger *zap.Logger) ([]byte, error) {
	client := resty.New().
		SetTimeout(60 * time.Second).
		SetHeader("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	logger.Info("Fetching input workbook", zap.String("url", url))

	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch input workbook: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch input workbook: %s returned %s", url, resp.Status())
	}
	return resp.Body(), nil
}
