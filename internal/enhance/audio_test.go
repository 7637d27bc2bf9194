package enhance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/hanki/internal/testutil"
)

func TestEnhanceNoteAudio(t *testing.T) {
	fixedTime := time.UnixMilli(1700000000000)

	t.Run("stores media and writes sound tag", func(t *testing.T) {
		store := testutil.NewFakeStore()
		synth := &testutil.FakeSynthesizer{Path: "/tmp/eleven_abc.mp3"}
		var out bytes.Buffer
		enhancer := NewAudioEnhancer(store, synth, &out)
		enhancer.now = func() time.Time { return fixedTime }

		note := testutil.NewNote(101, "사과", "apple", nil)
		if err := enhancer.EnhanceNoteAudio(context.Background(), note); err != nil {
			t.Fatalf("EnhanceNoteAudio() error = %v", err)
		}

		wantName := fmt.Sprintf("note_101_%d.mp3", fixedTime.UnixMilli())
		if store.StoredMedia[wantName] != "/tmp/eleven_abc.mp3" {
			t.Errorf("stored media = %v, want %s -> temp path", store.StoredMedia, wantName)
		}
		if got := store.UpdatedFields[101][FieldAudio]; got != "[sound:"+wantName+"]" {
			t.Errorf("Audio field = %q, want sound tag for %s", got, wantName)
		}
		if len(synth.Calls) != 1 || synth.Calls[0] != "사과" {
			t.Errorf("synthesizer calls = %v, want [사과]", synth.Calls)
		}
	})

	t.Run("missing Korean text skips without error", func(t *testing.T) {
		store := testutil.NewFakeStore()
		synth := &testutil.FakeSynthesizer{Path: "/tmp/x.mp3"}
		var out bytes.Buffer
		enhancer := NewAudioEnhancer(store, synth, &out)

		note := testutil.NewNote(101, "", "apple", nil)
		if err := enhancer.EnhanceNoteAudio(context.Background(), note); err != nil {
			t.Fatalf("EnhanceNoteAudio() error = %v", err)
		}
		if len(synth.Calls) != 0 {
			t.Errorf("synthesizer calls = %v, want none", synth.Calls)
		}
		if len(store.Calls) != 0 {
			t.Errorf("store calls = %v, want none", store.Calls)
		}
		if !strings.Contains(out.String(), "No Korean text") {
			t.Errorf("output = %q, want a skip message", out.String())
		}
	})

	t.Run("synthesis failure aborts this note", func(t *testing.T) {
		store := testutil.NewFakeStore()
		synth := &testutil.FakeSynthesizer{Err: errors.New("voice not found")}
		enhancer := NewAudioEnhancer(store, synth, &bytes.Buffer{})

		err := enhancer.EnhanceNoteAudio(context.Background(), testutil.NewNote(101, "사과", "apple", nil))
		if err == nil || !strings.Contains(err.Error(), "voice not found") {
			t.Errorf("EnhanceNoteAudio() error = %v, want synthesis failure", err)
		}
		if len(store.Calls) != 0 {
			t.Errorf("store calls = %v, want none after synthesis failure", store.Calls)
		}
	})
}

func TestMediaFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	got := mediaFilename(42, ts)
	if got != "note_42_1700000000000.mp3" {
		t.Errorf("mediaFilename() = %q, want note_42_1700000000000.mp3", got)
	}
}
