package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
)

var (
	mockAddr     string
	mockFail     string
	mockHTTPFail string
)

var mockapiCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Serve the dashboard endpoints locally with canned data",
	Long: `mockapi runs a local stand-in for the real backend. It serves every
dashboard endpoint with fixed sample data in the standard envelope shape.

Failures can be injected per key to exercise partial-failure handling:
  --fail news          → news answers 200 with success:false
  --http-fail trends   → trends answers HTTP 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failing := splitKeys(mockFail)
		httpFailing := splitKeys(mockHTTPFail)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)

		for _, k := range dashboard.Keys() {
			r.Get(k.EndpointPath(), mockHandler(k, failing[k], httpFailing[k]))
		}

		srv := &http.Server{Addr: mockAddr, Handler: r}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()

		logger.Info("mock backend started", zap.String("addr", mockAddr))

		select {
		case err := <-errc:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			logger.Info("mock backend stopped")
		}
		return nil
	},
}

func init() {
	mockapiCmd.Flags().StringVar(&mockAddr, "addr", ":8090", "Listen address")
	mockapiCmd.Flags().StringVar(&mockFail, "fail", "", "Comma-separated keys that answer success:false")
	mockapiCmd.Flags().StringVar(&mockHTTPFail, "http-fail", "", "Comma-separated keys that answer HTTP 500")
	rootCmd.AddCommand(mockapiCmd)
}

func splitKeys(raw string) map[dashboard.Key]bool {
	out := make(map[dashboard.Key]bool)
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out[dashboard.Key(name)] = true
		}
	}
	return out
}

// mockHandler serves one key's endpoint: canned data, or the configured
// failure mode.
func mockHandler(key dashboard.Key, appFail, httpFail bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if httpFail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "injected http failure",
			})
			return
		}
		if appFail {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "injected application failure",
			})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    sampleData(key),
		})
	}
}

// sampleData returns the canned payload for one key.
func sampleData(key dashboard.Key) any {
	switch key {
	case dashboard.KeyPoliticians:
		return []dashboard.Politician{
			{Name: "이재명", Party: "더불어민주당", District: "인천 계양구을", Committee: "국방위원회"},
			{Name: "한동훈", Party: "국민의힘", District: "비례대표", Committee: "법제사법위원회"},
			{Name: "조국", Party: "조국혁신당", District: "비례대표", Committee: "외교통일위원회"},
		}
	case dashboard.KeyBillScores:
		return map[string]dashboard.BillScore{
			"이재명": {MainProposals: 12, CoProposals: 25, TotalBills: 37},
			"한동훈": {MainProposals: 8, CoProposals: 31, TotalBills: 39},
			"조국":  {MainProposals: 15, CoProposals: 12, TotalBills: 27},
		}
	case dashboard.KeyNews:
		return dashboard.NewsStats{
			TotalArticles: 1284,
			PositiveRatio: 0.31,
			NegativeRatio: 0.44,
			NeutralRatio:  0.25,
			TopKeywords: []dashboard.KeywordCount{
				{Keyword: "국정감사", Count: 212},
				{Keyword: "예산안", Count: 167},
				{Keyword: "특검", Count: 134},
			},
			UpdatedAt: time.Now().Format(time.RFC3339),
		}
	case dashboard.KeyTrends:
		return dashboard.TrendChart{
			Labels: []string{"월", "화", "수", "목", "금"},
			Series: []dashboard.TrendSeries{
				{Name: "국정감사", Data: []float64{42, 55, 61, 58, 70}},
				{Name: "예산안", Data: []float64{31, 29, 44, 52, 49}},
			},
		}
	}
	return nil
}
