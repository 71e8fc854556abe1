package platform

import "testing"

func TestTimeoutDefault(t *testing.T) {
	if got := (Options{}).timeout(); got != 5000 {
		t.Fatalf("default timeout = %d", got)
	}
	if got := (Options{TimeoutMS: 1200}).timeout(); got != 1200 {
		t.Fatalf("timeout = %d", got)
	}
}
