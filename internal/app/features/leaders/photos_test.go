package leaders

import (
	"testing"

	"github.com/church611/shepherdview/internal/domain/models"
)

func TestFillPhotoGrid(t *testing.T) {
	all := []models.Leader{
		{ID: "l1", ChineseName: "王O勝", MGCode: "GJ", Generation: 1, AvatarURL: "https://photos.example.com/gj.jpg"},
		{ID: "l2", ChineseName: "陳O恩", MGCode: "GJ1", Generation: 2},
		{ID: "l3", ChineseName: "李O信", MGCode: "GJ2", Generation: 2},
		{ID: "l4", ChineseName: "張O望", MGCode: "GJ11", Generation: 3},
		{ID: "l5", ChineseName: "何O愛", MGCode: "MY", Generation: 1},
	}

	var data photosData
	fillPhotoGrid(&data, all, &all[0])

	if data.RootName != "王O勝" {
		t.Errorf("root name: got %q", data.RootName)
	}
	if data.Total != 4 {
		t.Errorf("total: got %d, want 4 (MY tribe excluded)", data.Total)
	}
	if data.Breakdown != "第2代：2、第3代：1" {
		t.Errorf("breakdown: got %q", data.Breakdown)
	}

	wantOrder := []string{"GJ", "GJ1", "GJ2", "GJ11"}
	if len(data.Cards) != len(wantOrder) {
		t.Fatalf("cards: got %d, want %d", len(data.Cards), len(wantOrder))
	}
	for i, mg := range wantOrder {
		if data.Cards[i].MGCode != mg {
			t.Errorf("card %d: got %q, want %q (generation before MG code)", i, data.Cards[i].MGCode, mg)
		}
	}
	if data.Cards[0].AvatarURL != "https://photos.example.com/gj.jpg" {
		t.Errorf("avatar url not carried: %q", data.Cards[0].AvatarURL)
	}
}

func TestFillPhotoGrid_RootOnly(t *testing.T) {
	all := []models.Leader{
		{ID: "l1", ChineseName: "何O愛", MGCode: "MY", Generation: 1},
	}

	var data photosData
	fillPhotoGrid(&data, all, &all[0])

	if data.Total != 1 {
		t.Errorf("total: got %d, want 1", data.Total)
	}
	if data.Breakdown != "" {
		t.Errorf("breakdown should be empty with no descendants, got %q", data.Breakdown)
	}
}
