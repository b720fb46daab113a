package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stocksense-project/backend/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Yahoo.BaseURL = srv.URL
	return NewClient(cfg)
}

func TestSearchNews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/finance/search") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "AAPL" {
			t.Fatalf("unexpected query symbol %s", r.URL.Query().Get("q"))
		}
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
			t.Fatal("expected a browser-style User-Agent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"news":[
			{"title":"Apple beats estimates","link":"https://example.com/1","publisher":"Reuters","providerPublishTime":1717236000},
			{"title":"","link":"https://example.com/skip","publisher":"X"},
			{"title":"iPhone sales up","link":"https://example.com/2","publisher":"","providerPublishTime":0}
		]}`))
	})

	items, err := client.SearchNews(context.Background(), "aapl", 5)
	if err != nil {
		t.Fatalf("SearchNews failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (untitled skipped), got %d", len(items))
	}
	if items[0].Title != "Apple beats estimates" || items[0].Publisher != "Reuters" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[0].PublishedAt.Unix() != 1717236000 {
		t.Fatalf("unexpected publish time: %v", items[0].PublishedAt)
	}
	if items[1].Publisher != "Yahoo Finance" {
		t.Fatalf("expected publisher fallback, got %q", items[1].Publisher)
	}
}

func TestSearchNewsHonorsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"news":[
			{"title":"one","link":"u1","publisher":"p"},
			{"title":"two","link":"u2","publisher":"p"},
			{"title":"three","link":"u3","publisher":"p"}
		]}`))
	})

	items, err := client.SearchNews(context.Background(), "TSLA", 2)
	if err != nil {
		t.Fatalf("SearchNews failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(items))
	}
}

func TestSearchNewsEmptySymbol(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty symbol")
	})

	if _, err := client.SearchNews(context.Background(), "  ", 5); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"chart":{"result":[{"meta":{
			"symbol":"AAPL","shortName":"Apple Inc.",
			"regularMarketPrice":187.5,"previousClose":185.0,"chartPreviousClose":180.0
		}}]}}`))
	})

	quote, err := client.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if quote.Symbol != "AAPL" || quote.Name != "Apple Inc." {
		t.Fatalf("unexpected quote identity: %+v", quote)
	}
	if quote.CurrentPrice != 187.5 {
		t.Fatalf("unexpected price %f", quote.CurrentPrice)
	}
	if quote.PreviousClose != 185.0 {
		t.Fatalf("unexpected previous close %f", quote.PreviousClose)
	}
}

func TestQuoteFallsBackToChartPreviousClose(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{
			"symbol":"TSLA","longName":"Tesla, Inc.",
			"regularMarketPrice":250.0,"chartPreviousClose":245.0
		}}]}}`))
	})

	quote, err := client.Quote(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if quote.Name != "Tesla, Inc." {
		t.Fatalf("expected long name fallback, got %q", quote.Name)
	}
	if quote.PreviousClose != 245.0 {
		t.Fatalf("expected chartPreviousClose fallback, got %f", quote.PreviousClose)
	}
}

func TestHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("range") != "1mo" {
			t.Fatalf("unexpected range %s", r.URL.Query().Get("range"))
		}
		w.Write([]byte(`{"chart":{"result":[{
			"meta":{"symbol":"AAPL"},
			"timestamp":[1717200000,1717286400],
			"indicators":{"quote":[{
				"open":[180,182],"high":[185,186],"low":[179,181],
				"close":[184,185.5],"volume":[1000,2000]
			}]}
		}]}}`))
	})

	bars, err := client.History(context.Background(), "AAPL", "")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 184 || bars[1].Close != 185.5 {
		t.Fatalf("unexpected closes: %f, %f", bars[0].Close, bars[1].Close)
	}
	if bars[1].Volume != 2000 {
		t.Fatalf("unexpected volume %d", bars[1].Volume)
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Fatal("expected bars in chronological order")
	}
}

func TestChartErrorSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	if _, err := client.Quote(context.Background(), "ZZZZ"); err == nil {
		t.Fatal("expected error for delisted symbol")
	}
}

func TestNon200Status(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.SearchNews(context.Background(), "AAPL", 5); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
