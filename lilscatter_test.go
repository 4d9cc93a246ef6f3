package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/susji/lilscatter/scatter"
)

var test_config = `
path_data=/somewhere/data.csv

[serve]
listen_addr=localhost:15517
path_wasm=/somewhere/chart.wasm
path_wasm_exec=/somewhere/wasm_exec.js
cors_origins=http://localhost:3000, http://example.org
read_timeout=5s
write_timeout=7s

[chart]
transition=900ms
snapshot_width=640
snapshot_height=480
glyph_size=12
font_size=9
title=Health and demographics
`

var test_data = `geography,abbr,allTeethRemoved,bachelorOrHigher,white,skinCancer,foodStamp,smoke
Alabama,AL,22,24,68,7.3,16.5,21
Alaska,AK,12,29,66,4.1,10.9,19
Arizona,AZ,14.5,27.5,77,8.2,12.1,15.1
`

func assert(t *testing.T, cond bool, msg ...interface{}) {
	t.Helper()
	if cond {
		return
	}
	t.Error(msg...)
}

func assertf(t *testing.T, cond bool, format string, msg ...interface{}) {
	t.Helper()
	if cond {
		return
	}
	t.Errorf(format, msg...)
}

func almost_equals(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func test_records(t *testing.T) []scatter.Record {
	t.Helper()
	records, err := scatter.ParseRecords(strings.NewReader(test_data))
	if err != nil {
		t.Fatal("cannot parse test data:", err)
	}
	return records
}

func test_cache(t *testing.T) (*config_serve, string) {
	t.Helper()
	td := t.TempDir()
	path_data := filepath.Join(td, "data.csv")
	if err := os.WriteFile(path_data, []byte(test_data), 0o600); err != nil {
		t.Fatal(err)
	}
	sc := &config_serve{
		path_data:      path_data,
		path_wasm:      filepath.Join(td, "missing.wasm"),
		path_wasm_exec: filepath.Join(td, "wasm_exec.js"),
		transition:     scatter.DefaultTransition,
		cors_origins:   []string{},
	}
	if err := os.WriteFile(sc.path_wasm_exec, []byte("// go runtime\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return sc, td
}

func TestParseConfig(t *testing.T) {
	c, err := config_load(bytes.NewBufferString(test_config))
	if err != nil {
		t.Fatal(err)
	}

	sc, err := c.parse_serve()
	if err != nil {
		t.Fatal("serve:", err)
	}
	rc, err := c.parse_render()
	if err != nil {
		t.Fatal("render:", err)
	}

	assert(t,
		sc.path_data == "/somewhere/data.csv",
		"unexpected serve path_data", sc.path_data)
	assert(t,
		sc.listen_addr == "localhost:15517",
		"unexpected listen_addr", sc.listen_addr)
	assert(t,
		sc.path_wasm == "/somewhere/chart.wasm",
		"unexpected path_wasm", sc.path_wasm)
	assert(t,
		sc.path_wasm_exec == "/somewhere/wasm_exec.js",
		"unexpected path_wasm_exec", sc.path_wasm_exec)
	assertf(t,
		len(sc.cors_origins) == 2 &&
			sc.cors_origins[0] == "http://localhost:3000" &&
			sc.cors_origins[1] == "http://example.org",
		"unexpected cors_origins: %#v", sc.cors_origins)
	assert(t,
		sc.transition == 900*time.Millisecond,
		"unexpected transition", sc.transition)
	assert(t,
		sc.read_timeout == 5*time.Second,
		"unexpected read_timeout", sc.read_timeout)
	assert(t,
		sc.write_timeout == 7*time.Second,
		"unexpected write_timeout", sc.write_timeout)

	assert(t,
		rc.path_data == "/somewhere/data.csv",
		"unexpected render path_data", rc.path_data)
	assert(t, rc.width == 640, "unexpected width", rc.width)
	assert(t, rc.height == 480, "unexpected height", rc.height)
	assert(t, rc.glyph_size == 12, "unexpected glyph_size", rc.glyph_size)
	assert(t, rc.font_size == 9, "unexpected font_size", rc.font_size)
	assert(t,
		rc.graph_title == "Health and demographics",
		"unexpected title", rc.graph_title)
}

func TestParseConfigDefaults(t *testing.T) {
	c, err := config_load(bytes.NewBufferString("path_data=/x.csv\n"))
	if err != nil {
		t.Fatal(err)
	}
	sc, err := c.parse_serve()
	if err != nil {
		t.Fatal(err)
	}
	assert(t, sc.listen_addr == DEFAULT_ADDR, "unexpected listen_addr", sc.listen_addr)
	assert(t, sc.transition == scatter.DefaultTransition, "unexpected transition", sc.transition)
	assert(t, len(sc.cors_origins) == 0, "unexpected cors_origins", sc.cors_origins)
}

func TestParseConfigBad(t *testing.T) {
	badconfigs := []string{
		"path_data=\n",
		"nonsense=1\n",
		"[serve]\nlisten_port=80\n",
		"[serve]\nread_timeout=soon\n",
		"[serve]\nwrite_timeout=-1s\n",
		"[chart]\ntransition=-5ms\n",
		"[chart]\nsnapshot_width=0\n",
		"[chart]\nglyph_size=big\n",
	}
	for n, badconfig := range badconfigs {
		t.Run(fmt.Sprintf("%d_%s", n+1, badconfig), func(t *testing.T) {
			c, err := config_load(bytes.NewBufferString(badconfig))
			if err != nil {
				return
			}
			if _, err := c.parse_serve(); err == nil {
				t.Error("should've failed but did not")
			}
		})
	}
}

func TestConfigParseList(t *testing.T) {
	table := []struct {
		give string
		want []string
	}{
		{give: "", want: []string{}},
		{give: "a", want: []string{"a"}},
		{give: " a , b,,c ", want: []string{"a", "b", "c"}},
	}
	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%s", n+1, entry.give), func(t *testing.T) {
			got := config_parse_list(entry.give)
			assertf(t, len(got) == len(entry.want), "wanted %#v, got %#v", entry.want, got)
			for i := range got {
				if i < len(entry.want) {
					assertf(t, got[i] == entry.want[i], "wanted %#v, got %#v", entry.want, got)
				}
			}
		})
	}
}

func TestDatabaseSmoke(t *testing.T) {
	ctx := context.Background()
	records := test_records(t)

	db, err := db_init()
	if err != nil {
		t.Fatal("cannot open:", err)
	}
	defer db.Close()
	err = db_migrate(ctx, db)
	assert(t, err == nil, "cannot migrate:", err)
	err = db_records_insert(ctx, db, records)
	assert(t, err == nil, "cannot insert:", err)

	got, err := db_records_get(ctx, db)
	assert(t, err == nil, "cannot get records:", err)
	assert(t, len(got) == len(records), "unexpected amount of records:", len(got))
	for i := range got {
		if i >= len(records) {
			break
		}
		assertf(t, got[i] == records[i], "record %d: wanted %#v, got %#v", i, records[i], got[i])
	}
}

func TestRecordsCache(t *testing.T) {
	sc, td := test_cache(t)
	db, err := records_cache(context.Background(), sc.path_data)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got, err := db_records_get(context.Background(), db)
	assert(t, err == nil, "cannot get records:", err)
	assert(t, len(got) == 3, "unexpected amount of records:", len(got))

	bad := filepath.Join(td, "bad.csv")
	if err := os.WriteFile(bad, []byte("geography,abbr\nAlabama,AL\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = records_cache(context.Background(), bad)
	assert(t, err != nil, "missing columns should fail the load")

	_, err = records_cache(context.Background(), filepath.Join(td, "nope.csv"))
	assert(t, err != nil, "missing data file should fail the load")
}

func TestServeRoutes(t *testing.T) {
	sc, _ := test_cache(t)
	db, err := records_cache(context.Background(), sc.path_data)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ts := httptest.NewServer(serve_router(sc, db))
	defer ts.Close()

	get := func(path string) (*http.Response, string) {
		res, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		b := bytes.Buffer{}
		if _, err := b.ReadFrom(res.Body); err != nil {
			t.Fatal(err)
		}
		return res, b.String()
	}

	t.Run("index", func(t *testing.T) {
		res, body := get("/")
		assert(t, res.StatusCode == http.StatusOK, "unexpected status", res.StatusCode)
		assert(t, strings.Contains(body, `data-src="/data/data.csv"`), "no data source in page")
		assert(t, strings.Contains(body, `data-transition="1.8s"`), "no transition in page")
		assert(t, strings.Contains(body, `class="tooltip"`), "no tooltip in page")
	})
	t.Run("data", func(t *testing.T) {
		res, body := get(DATA_ROUTE)
		assert(t, res.StatusCode == http.StatusOK, "unexpected status", res.StatusCode)
		assert(t, res.Header.Get("Content-Type") == DATA_MIMETYPE,
			"unexpected content type", res.Header.Get("Content-Type"))
		records, err := scatter.ParseRecords(strings.NewReader(body))
		assert(t, err == nil, "served data does not parse:", err)
		assert(t, len(records) == 3, "unexpected amount of records:", len(records))
	})
	t.Run("wasm_exec", func(t *testing.T) {
		res, body := get("/wasm_exec.js")
		assert(t, res.StatusCode == http.StatusOK, "unexpected status", res.StatusCode)
		assert(t, body == "// go runtime\n", "unexpected body", body)
	})
	t.Run("missing_wasm", func(t *testing.T) {
		res, _ := get("/chart.wasm")
		assert(t, res.StatusCode == http.StatusNotFound, "unexpected status", res.StatusCode)
	})
	t.Run("healthz", func(t *testing.T) {
		res, body := get("/healthz")
		assert(t, res.StatusCode == http.StatusOK, "unexpected status", res.StatusCode)
		assert(t, body == "ok\n", "unexpected body", body)
	})
	t.Run("unknown", func(t *testing.T) {
		res, _ := get("/nothing/here")
		assert(t, res.StatusCode == http.StatusNotFound, "unexpected status", res.StatusCode)
	})
}

func TestServeCORS(t *testing.T) {
	sc, _ := test_cache(t)
	sc.cors_origins = []string{"http://example.org"}
	db, err := records_cache(context.Background(), sc.path_data)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	h := serve_router(sc, db)

	for _, origin := range []string{"http://example.org", "http://evil.example.com"} {
		t.Run(origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, DATA_ROUTE, nil)
			req.Header.Set("Origin", origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			got := rec.Header().Get("Access-Control-Allow-Origin")
			if origin == "http://example.org" {
				assertf(t, got == origin, "wanted allowed origin, got %q", got)
			} else {
				assertf(t, got == "", "origin should not be allowed, got %q", got)
			}
		})
	}
}

func TestGraphFormat(t *testing.T) {
	table := []struct {
		give, want string
		fail       bool
	}{
		{give: "out.svg", want: "svg"},
		{give: "/tmp/OUT.PNG", want: "png"},
		{give: "x.pdf", want: "pdf"},
		{give: "x.gif", fail: true},
		{give: "noext", fail: true},
	}
	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%s", n+1, entry.give), func(t *testing.T) {
			got, err := graph_format(entry.give)
			if entry.fail {
				assert(t, err != nil, "should've failed but did not")
				return
			}
			assert(t, err == nil, "should not fail but:", err)
			assertf(t, got == entry.want, "wanted %q, got %q", entry.want, got)
		})
	}
}

func TestGraphGenerate(t *testing.T) {
	records := test_records(t)
	rc := default_config_render()
	rc.graph_title = "snapshot"

	for _, pair := range scatter.Pairs() {
		t.Run(pair.Name, func(t *testing.T) {
			b := bytes.Buffer{}
			err := graph_generate(records, pair.ID, rc, "svg", &b)
			if err != nil {
				t.Fatal(err)
			}
			out := b.String()
			assert(t, strings.Contains(out, "<svg"), "no svg element in output")
			for _, r := range records {
				assertf(t, strings.Contains(out, r.Abbr), "missing label %s", r.Abbr)
			}
		})
	}

	err := graph_generate(nil, scatter.InitialPair, rc, "svg", &bytes.Buffer{})
	assert(t, err == scatter.ErrNoRecords, "wanted ErrNoRecords, got", err)
}

func TestNeatFloatTicker(t *testing.T) {
	ticks := NeatFloatTicker{}.Ticks(19.2, 26.4)
	assert(t, len(ticks) > 0, "no ticks")
	for _, tick := range ticks {
		assertf(t, tick.Value >= 19.2 && tick.Value <= 26.4, "tick outside domain: %v", tick.Value)
		assert(t, tick.Label != "", "unlabelled tick", tick.Value)
	}
}

func TestRender(t *testing.T) {
	sc, td := test_cache(t)
	path_config := filepath.Join(td, "lilscatter.ini")
	err := os.WriteFile(path_config, []byte("path_data="+sc.path_data+"\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(td, "race.svg")
	err = render(&params_render{config_path: path_config, pair: "race", out_path: out})
	if err != nil {
		t.Fatal(err)
	}
	st, err := os.Stat(out)
	assert(t, err == nil && st.Size() > 0, "no snapshot written:", err)

	err = render(&params_render{config_path: path_config, pair: "nope", out_path: out})
	assert(t, err != nil, "unknown pair should fail")

	err = check(&params_check{config_path: path_config})
	assert(t, err == nil, "check should pass but:", err)
}
