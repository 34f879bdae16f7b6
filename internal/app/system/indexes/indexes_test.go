package indexes

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestKeySig(t *testing.T) {
	got := keySig(bson.D{{Key: "browser_id", Value: 1}, {Key: "key", Value: -1}})
	if want := "browser_id:1, key:-1"; got != want {
		t.Errorf("keySig() = %q, want %q", got, want)
	}
}

func TestIsUnique(t *testing.T) {
	yes, no := true, false
	if !isUnique(&yes) || isUnique(&no) || isUnique(nil) {
		t.Error("isUnique should be true only for a set true flag")
	}
}
