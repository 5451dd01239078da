package env

import (
	"reflect"
	"testing"
	"time"
)

func TestGetFallsBackOnBadValues(t *testing.T) {
	t.Setenv("ENV_TEST_INT", "abc")
	t.Setenv("ENV_TEST_BOOL", "maybe")
	t.Setenv("ENV_TEST_DUR", "soon")

	if got := GetInt("ENV_TEST_INT", 7); got != 7 {
		t.Errorf("GetInt = %d, want 7", got)
	}
	if got := GetBool("ENV_TEST_BOOL", true); !got {
		t.Errorf("GetBool = %v, want true", got)
	}
	if got := GetDuration("ENV_TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("GetDuration = %v, want 1m", got)
	}
}

func TestGetParsesValues(t *testing.T) {
	t.Setenv("ENV_TEST_INT", "42")
	t.Setenv("ENV_TEST_BOOL", "off")
	t.Setenv("ENV_TEST_DUR", "90")
	t.Setenv("ENV_TEST_LIST", "a, b;c")
	t.Setenv("ENV_TEST_STR", "  ")

	if got := GetInt("ENV_TEST_INT", 0); got != 42 {
		t.Errorf("GetInt = %d, want 42", got)
	}
	if got := GetBool("ENV_TEST_BOOL", true); got {
		t.Errorf("GetBool = %v, want false", got)
	}
	if got := GetDuration("ENV_TEST_DUR", 0); got != 90*time.Second {
		t.Errorf("GetDuration = %v, want 90s", got)
	}
	if got := GetList("ENV_TEST_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("GetList = %v", got)
	}
	if got := Get("ENV_TEST_STR", "def"); got != "def" {
		t.Errorf("Get blank = %q, want def", got)
	}
}
