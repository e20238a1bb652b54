package version

import "testing"

func TestInfo_Defaults(t *testing.T) {
	bi := Info()
	if bi.Service != "inkverse" || bi.Version != "dev" || bi.Commit != "none" {
		t.Fatalf("info = %+v", bi)
	}
}
