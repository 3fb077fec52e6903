package cache_test

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bizdesk/internal/cache"
	"github.com/go-ports/bizdesk/internal/models"
)

// openTestDB opens a fresh cache in a temp directory and registers
// t.Cleanup to close it.
func openTestDB(t *testing.T) *cache.DB {
	t.Helper()
	d, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func clients() []models.Client {
	return []models.Client{
		{ID: "1", Name: "Acme Traders", FirmName: "Acme"},
		{ID: "2", Name: "Bilal Stores", FirmName: "Bilal & Sons"},
		{ID: "3", Name: "100% Cotton", FirmName: ""},
	}
}

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpen_IsIdempotent(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "cache.db")

	d, err := cache.Open(path)
	c.Assert(err, qt.IsNil)
	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients())), qt.IsNil)
	c.Assert(d.Close(), qt.IsNil)

	d, err = cache.Open(path)
	c.Assert(err, qt.IsNil)
	defer d.Close()
	got, err := d.List(cache.KindClient)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 3)
	c.Assert(d.Path(), qt.Equals, path)
}

// ---------------------------------------------------------------------------
// Replace / Lookup
// ---------------------------------------------------------------------------

func TestReplace_SwapsKind(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)

	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients())), qt.IsNil)
	c.Assert(d.Replace(cache.KindBank, cache.BankRefs([]models.Bank{{ID: "1", BankName: "HBL"}})), qt.IsNil)
	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients()[:1])), qt.IsNil)

	got, err := d.List(cache.KindClient)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 1)

	banks, err := d.List(cache.KindBank)
	c.Assert(err, qt.IsNil)
	c.Assert(banks, qt.HasLen, 1)
}

func TestReplace_SkipsRowsWithoutID(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)

	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs([]models.Client{{Name: "ghost"}, {ID: "1", Name: "A"}})), qt.IsNil)
	got, err := d.List(cache.KindClient)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 1)
}

func TestLookup(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients())), qt.IsNil)

	c.Run("hit", func(c *qt.C) {
		r, err := d.Lookup(cache.KindClient, "2")
		c.Assert(err, qt.IsNil)
		c.Assert(r.Name, qt.Equals, "Bilal Stores")
		c.Assert(r.Detail, qt.Equals, "Bilal & Sons")
		c.Assert(r.SyncedAt.IsZero(), qt.IsFalse)
		c.Assert(string(r.Raw), qt.Contains, `"name":"Bilal Stores"`)
	})

	c.Run("miss", func(c *qt.C) {
		_, err := d.Lookup(cache.KindClient, "42")
		c.Assert(err, qt.ErrorIs, cache.ErrNotFound)
	})

	c.Run("wrong kind", func(c *qt.C) {
		_, err := d.Lookup(cache.KindVendor, "2")
		c.Assert(err, qt.ErrorIs, cache.ErrNotFound)
	})
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func TestSearch(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients())), qt.IsNil)
	c.Assert(d.Replace(cache.KindVendor, cache.VendorRefs([]models.Vendor{{ID: "1", Name: "Acme Packaging"}})), qt.IsNil)

	cases := []struct {
		name  string
		query string
		kind  cache.Kind
		want  []string
	}{
		{"case-insensitive across kinds", "acme", "", []string{"Acme Traders", "Acme Packaging"}},
		{"restricted to kind", "acme", cache.KindVendor, []string{"Acme Packaging"}},
		{"matches detail", "sons", "", []string{"Bilal Stores"}},
		{"percent is literal", "100%", "", []string{"100% Cotton"}},
		{"underscore is literal", "_", "", nil},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, err := d.Search(tc.query, tc.kind, 0)
			c.Assert(err, qt.IsNil)
			var names []string
			for _, r := range got {
				names = append(names, r.Name)
			}
			c.Assert(names, qt.DeepEquals, tc.want)
		})
	}
}

func TestSearch_Limit(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients())), qt.IsNil)

	got, err := d.Search("", "", 2)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 2)
}

// ---------------------------------------------------------------------------
// Stats / Clear
// ---------------------------------------------------------------------------

func TestStatsAndClear(t *testing.T) {
	c := qt.New(t)
	d := openTestDB(t)
	c.Assert(d.Replace(cache.KindClient, cache.ClientRefs(clients())), qt.IsNil)

	stats, err := d.Stats()
	c.Assert(err, qt.IsNil)
	c.Assert(stats, qt.HasLen, len(cache.Kinds))
	c.Assert(stats[0].Kind, qt.Equals, cache.KindClient)
	c.Assert(stats[0].Count, qt.Equals, 3)
	c.Assert(stats[0].SyncedAt.IsZero(), qt.IsFalse)
	c.Assert(stats[1].Count, qt.Equals, 0)
	c.Assert(stats[1].SyncedAt.IsZero(), qt.IsTrue)

	c.Assert(d.Clear(), qt.IsNil)
	stats, err = d.Stats()
	c.Assert(err, qt.IsNil)
	c.Assert(stats[0].Count, qt.Equals, 0)
	c.Assert(stats[0].SyncedAt.IsZero(), qt.IsTrue)
}

func TestParseKind(t *testing.T) {
	c := qt.New(t)

	cases := map[string]cache.Kind{
		"clients":    cache.KindClient,
		"Vendor":     cache.KindVendor,
		"banks":      cache.KindBank,
		"categories": cache.KindCategory,
		"":           "",
	}
	for in, want := range cases {
		got, err := cache.ParseKind(in)
		c.Assert(err, qt.IsNil, qt.Commentf("input %q", in))
		c.Assert(got, qt.Equals, want)
	}

	_, err := cache.ParseKind("invoices")
	c.Assert(err, qt.ErrorMatches, `unknown kind "invoices"`)
}
