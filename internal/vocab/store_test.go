package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func entry(word string) Entry {
	return Entry{
		Word:         word,
		PartOfSpeech: "noun",
		DefinitionEn: word + " definition",
		DefinitionZh: word + " 翻譯",
		ExampleEn:    "an example with " + word,
		ExampleZh:    "例句",
	}
}

func TestAdd_Dedup(t *testing.T) {
	s := NewStore()
	if !s.Add(entry("apple")) {
		t.Fatal("first add should insert")
	}
	if s.Add(entry("apple")) {
		t.Error("duplicate add should be a no-op")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestAdd_CaseSensitive(t *testing.T) {
	s := NewStore(entry("apple"))
	if !s.Add(entry("Apple")) {
		t.Error("words differing only in case are distinct")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestAdd_PreservesOrder(t *testing.T) {
	s := NewStore()
	for _, w := range []string{"desk", "apple", "candle", "apple", "bridge"} {
		s.Add(entry(w))
	}
	got := strings.Join(s.Words(), ",")
	if got != "desk,apple,candle,bridge" {
		t.Errorf("Words = %s, want desk,apple,candle,bridge", got)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore(entry("apple"), entry("bridge"), entry("candle"))

	if !s.Remove("bridge") {
		t.Fatal("Remove(bridge) = false, want true")
	}
	if s.Contains("bridge") {
		t.Error("bridge still present after remove")
	}
	if got := strings.Join(s.Words(), ","); got != "apple,candle" {
		t.Errorf("Words = %s, want apple,candle", got)
	}

	// Index must follow the shifted entries.
	e, ok := s.Get("candle")
	if !ok || e.Word != "candle" {
		t.Errorf("Get(candle) = %+v, %v", e, ok)
	}
}

func TestRemove_Absent(t *testing.T) {
	s := NewStore(entry("apple"))
	if s.Remove("zebra") {
		t.Error("Remove of absent word should report false")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestMerge_CountsNewOnly(t *testing.T) {
	s := NewStore(entry("apple"), entry("bridge"))
	added := s.Merge([]Entry{entry("bridge"), entry("candle"), entry("candle"), entry("desk")})
	if added != 2 {
		t.Errorf("Merge added = %d, want 2", added)
	}
	if got := strings.Join(s.Words(), ","); got != "apple,bridge,candle,desk" {
		t.Errorf("Words = %s", got)
	}
}

func TestMerge_KeepsExisting(t *testing.T) {
	original := entry("apple")
	s := NewStore(original)

	replacement := entry("apple")
	replacement.DefinitionEn = "something else"
	s.Merge([]Entry{replacement})

	got, _ := s.Get("apple")
	if got.DefinitionEn != original.DefinitionEn {
		t.Errorf("DefinitionEn = %q, want existing %q", got.DefinitionEn, original.DefinitionEn)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	batch := []Entry{entry("apple"), entry("bridge"), entry("apple"), entry("candle")}

	once := NewStore(entry("desk"))
	once.Merge(batch)

	twice := NewStore(entry("desk"))
	twice.Merge(batch)
	if n := twice.Merge(batch); n != 0 {
		t.Errorf("second merge added %d, want 0", n)
	}

	if strings.Join(once.Words(), ",") != strings.Join(twice.Words(), ",") {
		t.Errorf("once = %v, twice = %v", once.Words(), twice.Words())
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := NewStore(entry("apple"))
	got := s.Entries()
	got[0].Word = "mutated"
	if !s.Contains("apple") {
		t.Error("mutating Entries() result changed the store")
	}
}

func TestExport_Format(t *testing.T) {
	s := NewStore(entry("apple"), entry("bridge"))
	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "[\n  {\n    \"word\": \"apple\"") {
		t.Errorf("export not indented with two spaces:\n%s", out)
	}

	var decoded []Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported JSON does not decode: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Word != "bridge" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewStore().Export(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty export = %q, want []", buf.String())
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := NewStore(entry("apple"), entry("bridge"))
	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := NewStore()
	n, err := dst.Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}
	got, _ := dst.Get("bridge")
	if got != entry("bridge") {
		t.Errorf("bridge = %+v, want %+v", got, entry("bridge"))
	}
}

func TestImport_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIndex int
	}{
		{"broken json", `[{"word": "apple"`, -1},
		{"object", `{"word": "apple"}`, -1},
		{"string", `"apple"`, -1},
		{"null", `null`, -1},
		{"element not object", `[{"word": "apple"}, 42]`, 1},
		{"missing word", `[{"definitionEn": "x"}]`, 0},
		{"blank word", `[{"word": "   "}]`, 0},
		{"word not string", `[{"word": 7}]`, 0},
		{"field not string", `[{"word": "apple"}, {"word": "bridge", "ipa": ["x"]}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(entry("desk"))
			n, err := s.Import(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			var perr *ImportParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %T, want *ImportParseError", err)
			}
			if perr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", perr.Index, tt.wantIndex)
			}
			if n != 0 {
				t.Errorf("added = %d, want 0", n)
			}
			if s.Len() != 1 {
				t.Errorf("store changed: Len = %d, want 1", s.Len())
			}
		})
	}
}

func TestImport_FillsMissingFields(t *testing.T) {
	s := NewStore()
	n, err := s.Import(strings.NewReader(`[{"word": "lamp", "ipa": null}]`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("added = %d, want 1", n)
	}
	got, _ := s.Get("lamp")
	if got.PartOfSpeech != UnknownPOS {
		t.Errorf("PartOfSpeech = %q, want %q", got.PartOfSpeech, UnknownPOS)
	}
	if got.DefinitionEn != NoDefinition {
		t.Errorf("DefinitionEn = %q, want %q", got.DefinitionEn, NoDefinition)
	}
	if got.ExampleZh != NoExampleZh {
		t.Errorf("ExampleZh = %q, want %q", got.ExampleZh, NoExampleZh)
	}
}

func TestImport_IgnoresUnknownFields(t *testing.T) {
	s := NewStore()
	_, err := s.Import(strings.NewReader(`[{"word": "tent", "audioUrl": 3}]`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !s.Contains("tent") {
		t.Error("tent not imported")
	}
}

func TestImport_Idempotent(t *testing.T) {
	doc := `[{"word": "tent"}, {"word": "lamp"}, {"word": "tent"}]`
	s := NewStore()
	first, err := s.Import(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	second, err := s.Import(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if first != 2 || second != 0 {
		t.Errorf("added = %d then %d, want 2 then 0", first, second)
	}
}

func TestFailed(t *testing.T) {
	e := Failed("radio")
	if !e.IsFailed() {
		t.Error("Failed entry should report IsFailed")
	}
	if e.ExampleEn != "-" || e.ExampleZh != "-" {
		t.Errorf("examples = %q/%q, want -/-", e.ExampleEn, e.ExampleZh)
	}
	if entry("radio").IsFailed() {
		t.Error("normal entry should not report IsFailed")
	}
}
