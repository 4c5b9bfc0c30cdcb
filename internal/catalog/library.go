package catalog

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/duetstage/singoff/internal/party"
)

// Library is a parsed song library: the catalog plus its playlists.
type Library struct {
	Catalog   *Catalog
	Playlists *Playlists
}

type libraryFile struct {
	Songs     []songBlock     `hcl:"song,block"`
	Playlists []playlistBlock `hcl:"playlist,block"`
}

type songBlock struct {
	Title    string   `hcl:"title,label"`
	ID       int      `hcl:"id"`
	Artist   string   `hcl:"artist,optional"`
	Category int      `hcl:"category,optional"`
	Modes    []string `hcl:"modes,optional"`
	Duet     bool     `hcl:"duet,optional"`
}

type playlistBlock struct {
	Name  string `hcl:"name,label"`
	ID    int    `hcl:"id"`
	Songs []int  `hcl:"songs"`
}

// LoadLibrary loads a song library from an HCL file.
func LoadLibrary(filename string) (*Library, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read song library: %w", err)
	}
	return ParseLibrary(src, filename)
}

// ParseLibrary decodes a song library from HCL source.
func ParseLibrary(src []byte, filename string) (*Library, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse song library: %s", diags.Error())
	}

	var lib libraryFile
	if diags := gohcl.DecodeBody(file.Body, nil, &lib); diags.HasErrors() {
		return nil, fmt.Errorf("decode song library: %s", diags.Error())
	}

	songs := make([]party.Song, 0, len(lib.Songs))
	ids := make(map[int]bool, len(lib.Songs))
	for _, sb := range lib.Songs {
		if sb.ID <= 0 {
			return nil, fmt.Errorf("song %q: id must be positive", sb.Title)
		}
		if ids[sb.ID] {
			return nil, fmt.Errorf("song %q: duplicate id %d", sb.Title, sb.ID)
		}
		ids[sb.ID] = true

		modes, err := parseModes(sb.Modes)
		if err != nil {
			return nil, fmt.Errorf("song %q: %w", sb.Title, err)
		}
		songs = append(songs, party.Song{
			ID:       sb.ID,
			Title:    sb.Title,
			Artist:   sb.Artist,
			Category: sb.Category,
			Modes:    modes,
			Duet:     sb.Duet,
		})
	}

	playlists := NewPlaylists()
	for _, pb := range lib.Playlists {
		for _, songID := range pb.Songs {
			if !ids[songID] {
				return nil, fmt.Errorf("playlist %q: unknown song id %d", pb.Name, songID)
			}
		}
		playlists.Add(pb.ID, pb.Name, pb.Songs)
	}

	return &Library{Catalog: New(songs), Playlists: playlists}, nil
}

// parseModes maps mode names to a mode set; an empty list defaults to
// standard.
func parseModes(names []string) (party.ModeSet, error) {
	if len(names) == 0 {
		return party.NewModeSet(party.ModeStandard), nil
	}
	var set party.ModeSet
	for _, name := range names {
		switch name {
		case "standard":
			set |= party.NewModeSet(party.ModeStandard)
		case "duet":
			set |= party.NewModeSet(party.ModeDuet)
		case "medley":
			set |= party.NewModeSet(party.ModeMedley)
		default:
			return 0, fmt.Errorf("unknown mode %q", name)
		}
	}
	return set, nil
}
