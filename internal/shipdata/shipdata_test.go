package shipdata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/shipyard/internal/board"
	"github.com/samdwyer/shipyard/internal/component"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return catalog
}

func testBoards(t *testing.T) []BoardDef {
	t.Helper()
	boards, err := LoadBoards()
	if err != nil {
		t.Fatalf("LoadBoards: %v", err)
	}
	return boards
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if catalog.Count() != 19 {
		t.Errorf("Expected 19 tiles, got %d", catalog.Count())
	}

	// Every category is represented
	seen := make(map[component.Category]bool)
	for _, def := range catalog.All() {
		tile, err := catalog.Build(def.ID)
		if err != nil {
			t.Fatalf("Build(%q): %v", def.ID, err)
		}
		seen[tile.Category()] = true
	}
	if len(seen) != 8 {
		t.Errorf("Expected 8 categories, got %d", len(seen))
	}
}

func TestCatalogBuild(t *testing.T) {
	catalog := testCatalog(t)

	cabin, err := catalog.Build("cabin-1")
	if err != nil {
		t.Fatalf("Build cabin-1: %v", err)
	}
	if cabin.Humans() != 2 {
		t.Errorf("Expected 2 humans, got %d", cabin.Humans())
	}
	if cabin.Side(component.East) != component.ConnectorDouble {
		t.Errorf("Expected double on east, got %s", cabin.Side(component.East))
	}

	// Each build is a fresh tile
	other, _ := catalog.Build("cabin-1")
	if other == cabin {
		t.Error("Build returned the same tile twice")
	}

	engine, _ := catalog.Build("engine-2")
	if d, ok := engine.MountDirection(); !ok || d != component.South {
		t.Errorf("Expected engine mount south, got %s (%v)", d, ok)
	}

	if _, err := catalog.Build("warp-drive"); err == nil {
		t.Error("Expected error for unknown tile")
	}
}

func TestNewCatalogRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []TileDef
	}{
		{"duplicate id", []TileDef{
			{ID: "a", Category: "structural", Sides: [4]string{"none", "none", "none", "none"}, Color: "#000000"},
			{ID: "a", Category: "structural", Sides: [4]string{"none", "none", "none", "none"}, Color: "#000000"},
		}},
		{"unknown connector", []TileDef{
			{ID: "a", Category: "structural", Sides: [4]string{"triple", "none", "none", "none"}, Color: "#000000"},
		}},
		{"unknown category", []TileDef{
			{ID: "a", Category: "teleporter", Sides: [4]string{"none", "none", "none", "none"}, Color: "#000000"},
		}},
		{"engine without mount", []TileDef{
			{ID: "a", Category: "engine", Sides: [4]string{"single", "none", "none", "none"}, Color: "#000000"},
		}},
		{"shield with one cover", []TileDef{
			{ID: "a", Category: "shield", Sides: [4]string{"none", "none", "none", "none"}, Covers: []string{"north"}, Color: "#000000"},
		}},
		{"bad color", []TileDef{
			{ID: "a", Category: "structural", Sides: [4]string{"none", "none", "none", "none"}, Color: "blue"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.defs); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadBoards(t *testing.T) {
	boards := testBoards(t)
	if len(boards) != 2 {
		t.Fatalf("Expected 2 boards, got %d", len(boards))
	}

	def := FindBoard(boards, "level-2")
	if def == nil {
		t.Fatal("level-2 not found")
	}
	g, err := def.NewGraph(testCatalog(t))
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}

	cabin, ok := g.At(board.Coordinate{Row: 2, Col: 3})
	if !ok || !cabin.IsCommand() {
		t.Error("Expected command cabin at (2, 3)")
	}
	if g.IsUsable(board.Coordinate{Row: 0, Col: 0}) {
		t.Error("Expected (0, 0) to be unusable")
	}
	if FindBoard(boards, "level-9") != nil {
		t.Error("Expected nil for unknown board")
	}
}

func TestLoadShip(t *testing.T) {
	sf, err := LoadShip("testdata/ship.yaml")
	if err != nil {
		t.Fatalf("LoadShip: %v", err)
	}
	if sf.Player != "alice" || len(sf.Tiles) != 4 {
		t.Fatalf("Unexpected ship file: %+v", sf)
	}

	g, err := sf.Assemble(testCatalog(t), testBoards(t), "level-1")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if g.Len() != 5 {
		t.Errorf("Expected 5 tiles including the command cabin, got %d", g.Len())
	}

	hull, _ := g.At(board.Coordinate{Row: 2, Col: 2})
	if hull.Rotation() != 1 || !hull.Placed() {
		t.Errorf("Expected placed hull with rotation 1, got %d", hull.Rotation())
	}

	status, ok := g.Edge(board.Coordinate{Row: 2, Col: 3}, board.Coordinate{Row: 2, Col: 4})
	if !ok || status != component.StatusWelded {
		t.Errorf("Expected command and cabin welded, got %s", status)
	}
}

func TestReadShipErrors(t *testing.T) {
	if _, err := ReadShip(strings.NewReader("player: bob\nhull: 3\n")); err == nil {
		t.Error("Expected error for unknown field")
	}

	sf, err := ReadShip(strings.NewReader("tiles:\n  - tile: hull-1\n    row: 2\n    col: 3\n"))
	if err != nil {
		t.Fatalf("ReadShip: %v", err)
	}
	if sf.Player != "player" {
		t.Errorf("Expected default player name, got %q", sf.Player)
	}
	// (2, 3) is the command cabin on level-2.
	if _, err := sf.Assemble(testCatalog(t), testBoards(t), "level-2"); err == nil {
		t.Error("Expected error placing onto the command cabin")
	}
	if _, err := sf.Assemble(testCatalog(t), testBoards(t), "level-9"); err == nil {
		t.Error("Expected error for unknown board")
	}
}

func TestShipFileRoundTrip(t *testing.T) {
	sf := &ShipFile{
		Player: "carol",
		Board:  "level-1",
		Tiles:  []Placement{{Tile: "pipe-1", Row: 3, Col: 2, Rotation: 2}},
	}
	var buf bytes.Buffer
	if err := sf.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "tile: pipe-1") {
		t.Errorf("Unexpected YAML:\n%s", buf.String())
	}
	back, err := ReadShip(&buf)
	if err != nil {
		t.Fatalf("ReadShip: %v", err)
	}
	if back.Tiles[0] != sf.Tiles[0] {
		t.Errorf("Expected %+v, got %+v", sf.Tiles[0], back.Tiles[0])
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff80", tcell.NewRGBColor(0, 255, 128), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTileColorFallsBackToCategory(t *testing.T) {
	catalog := testCatalog(t)
	tile := component.New("custom", [4]component.Connector{}, component.Battery{Charges: 1})
	if got := catalog.TileColor(tile); got != tcell.ColorGreen {
		t.Errorf("Expected green fallback, got %v", got)
	}
	cargo, _ := catalog.Build("cargo-red")
	if got := catalog.TileColor(cargo); got != tcell.NewRGBColor(0xCC, 0, 0) {
		t.Errorf("Expected catalog red, got %v", got)
	}
}

func TestNewShipFileRebuildsSameBoard(t *testing.T) {
	catalog := testCatalog(t)
	boards := testBoards(t)
	sf, err := LoadShip("testdata/ship.yaml")
	if err != nil {
		t.Fatal(err)
	}
	g, err := sf.Assemble(catalog, boards, "")
	if err != nil {
		t.Fatal(err)
	}

	saved := NewShipFile(sf.Player, FindBoard(boards, sf.Board), g)
	if saved.Command != nil {
		t.Errorf("Expected the command cabin to stay implied, got command: %v", *saved.Command)
	}
	if len(saved.Tiles) != len(sf.Tiles) {
		t.Fatalf("Expected %d placements, got %d", len(sf.Tiles), len(saved.Tiles))
	}

	again, err := saved.Assemble(catalog, boards, "")
	if err != nil {
		t.Fatalf("Assemble saved ship: %v", err)
	}
	if again.String() != g.String() {
		t.Errorf("Rebuilt board differs:\n%s\nwant:\n%s", again, g)
	}
}

func TestShipFileRemembersLostCommandCabin(t *testing.T) {
	catalog := testCatalog(t)
	boards := testBoards(t)

	tests := []struct {
		name  string
		tiles []Placement
	}{
		{"bare board", nil},
		{"cabin left behind", []Placement{{Tile: "cabin-1", Row: 2, Col: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := FindBoard(boards, "level-2")
			g, err := (&ShipFile{Board: def.ID, Tiles: tt.tiles}).Assemble(catalog, boards, "")
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if _, err := g.Remove(def.Command); err != nil {
				t.Fatalf("Remove command cabin: %v", err)
			}

			saved := NewShipFile("dave", def, g)
			if saved.HasCommand() {
				t.Error("Expected the saved ship to record the missing command cabin")
			}
			var buf bytes.Buffer
			if err := saved.Write(&buf); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if !strings.Contains(buf.String(), "command: false") {
				t.Errorf("Unexpected YAML:\n%s", buf.String())
			}

			back, err := ReadShip(&buf)
			if err != nil {
				t.Fatalf("ReadShip: %v", err)
			}
			again, err := back.Assemble(catalog, boards, "")
			if err != nil {
				t.Fatalf("Assemble saved ship: %v", err)
			}
			if again.Len() != g.Len() {
				t.Errorf("Expected %d tiles after reload, got %d", g.Len(), again.Len())
			}
			if _, ok := again.At(def.Command); ok {
				t.Error("Command cabin came back after reload")
			}
		})
	}
}

func TestDecodeStrictRejectsUnknownFields(t *testing.T) {
	if _, err := decodeStrict[BoardsFile]("boards", strings.NewReader(`{"boards": [{"id": "x", "colour": "red"}]}`)); err == nil {
		t.Error("Expected error for unknown field")
	}
	if _, err := decodeStrict[BoardsFile]("boards", strings.NewReader(`{"boards": []} {}`)); err == nil {
		t.Error("Expected error for trailing document")
	}
	file, err := decodeStrict[BoardsFile]("boards", strings.NewReader(`{"boards": [{"id": "x", "command": {"row": 1, "col": 2}}]}`))
	if err != nil {
		t.Fatalf("decodeStrict: %v", err)
	}
	if file.Boards[0].Command != (board.Coordinate{Row: 1, Col: 2}) {
		t.Errorf("Unexpected command cell %v", file.Boards[0].Command)
	}
}
