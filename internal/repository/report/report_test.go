package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kailas-cloud/adrecon/internal/domain"
)

func TestWriteNames_EmptySetIsJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ad_results.json")
	sink := NewSink()

	if err := sink.WriteNames(path, domain.NewNameSet(nil)); err != nil {
		t.Fatalf("WriteNames: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("empty set serialized as %q, want %q", data, "[]\n")
	}
}

func TestWriteNames_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ad_results.json")
	sink := NewSink()
	names := domain.NewNameSet([]string{"SG002", "SG001", "SGÜ03"})

	if err := sink.WriteNames(path, names); err != nil {
		t.Fatalf("WriteNames: %v", err)
	}
	got, err := sink.ReadNames(path)
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}

	if !reflect.DeepEqual(got.Names(), names.Names()) {
		t.Errorf("round trip = %v, want %v", got.Names(), names.Names())
	}
}

func TestWriteNames_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "ad_results.json")
	sink := NewSink()

	if err := sink.WriteNames(path, domain.NewNameSet([]string{"SG001"})); err != nil {
		t.Fatalf("WriteNames: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWriteComparison_KeyNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ad_comparison_results.json")
	sink := NewSink()
	result := domain.Compare(
		domain.NewNameSet([]string{"SG001", "SG002"}),
		domain.NewNameSet([]string{"SG002", "SG003"}),
	)

	if err := sink.WriteComparison(path, result); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not a JSON object: %v", err)
	}
	if !reflect.DeepEqual(doc["MissingInAD"], []string{"SG001"}) {
		t.Errorf("MissingInAD = %v", doc["MissingInAD"])
	}
	if !reflect.DeepEqual(doc["MissingInGSN"], []string{"SG003"}) {
		t.Errorf("MissingInGSN = %v", doc["MissingInGSN"])
	}
	if len(doc) != 2 {
		t.Errorf("expected exactly two keys, got %v", doc)
	}
}

func TestWriteComparison_Idempotent(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink()
	gsn := domain.NewNameSet([]string{"SG001", "SG002", "SG003"})
	ad := domain.NewNameSet([]string{"SG004", "SG003", "SG002"})

	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := sink.WriteComparison(first, domain.Compare(gsn, ad)); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}
	if err := sink.WriteComparison(second, domain.Compare(gsn, ad)); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Errorf("repeated runs produced different bytes:\n%s\nvs\n%s", a, b)
	}
}

func TestReadNames_MissingFileIsEmpty(t *testing.T) {
	sink := NewSink()

	got, err := sink.ReadNames(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected empty set, got %v", got.Names())
	}
}

func TestReadNames_ToleratesBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ad_results.json")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`["SG001","SG002"]`)...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := NewSink().ReadNames(path)
	if err != nil {
		t.Fatalf("ReadNames: %v", err)
	}
	if !reflect.DeepEqual(got.Names(), []string{"SG001", "SG002"}) {
		t.Errorf("Names() = %v", got.Names())
	}
}

func TestReadNames_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ad_results.json")
	if err := os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewSink().ReadNames(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteNames_FailsClosedOnBadPath(t *testing.T) {
	dir := t.TempDir()
	// Target path is an existing directory: the rename must fail and the
	// error must surface rather than being swallowed.
	path := filepath.Join(dir, "taken")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := NewSink().WriteNames(path, domain.NewNameSet([]string{"SG001"})); err == nil {
		t.Error("expected write error")
	}
}
