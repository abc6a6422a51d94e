package models

import (
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

func TestTask_UniqueGenerationKey(t *testing.T) {
	typ := reflect.TypeOf(Task{})

	// Every component of the idempotence key must share the composite
	// unique index.
	for _, field := range []string{"OwnerID", "ItemID", "Date", "Label"} {
		assertGormTag(t, typ, field, "uniqueIndex:idx_owner_item_date_label")
	}
	assertGormTag(t, typ, "Status", "default:pending")
}

func TestSWOTItem_Fields(t *testing.T) {
	typ := reflect.TypeOf(SWOTItem{})

	assertGormTag(t, typ, "OwnerID", "index")
	assertGormTag(t, typ, "Category", "size:16")
	assertGormTag(t, typ, "Description", "size:255")
	assertGormTag(t, typ, "Frequency", "size:12")
	assertGormTag(t, typ, "DowMask", "default:127")
	assertGormTag(t, typ, "Active", "default:true")

	f, ok := typ.FieldByName("MonthDay")
	if !ok {
		t.Fatal("SWOTItem.MonthDay: field not found")
	}
	if f.Type.String() != "*int" {
		t.Errorf("SWOTItem.MonthDay type = %q, want *int", f.Type.String())
	}
}

func TestStreak_OneRowPerOwner(t *testing.T) {
	typ := reflect.TypeOf(Streak{})

	assertGormTag(t, typ, "OwnerID", "uniqueIndex")
	assertGormTag(t, typ, "Count", "default:0")

	f, ok := typ.FieldByName("LastDay")
	if !ok {
		t.Fatal("Streak.LastDay: field not found")
	}
	if f.Type.String() != "*time.Time" {
		t.Errorf("Streak.LastDay type = %q, want *time.Time", f.Type.String())
	}
}

func TestDowMaskAll(t *testing.T) {
	if DowMaskAll != 127 {
		t.Errorf("DowMaskAll = %d, want 127", DowMaskAll)
	}
}
