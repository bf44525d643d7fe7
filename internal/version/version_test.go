package version

import "testing"

func TestGet(t *testing.T) {
	defer func(v, d string) { Version, Dirty = v, d }(Version, Dirty)
	Version, Dirty = "1.2.3", "true"
	info := Get()
	if info.Version != "1.2.3" || !info.Dirty || info.Commit != Commit {
		t.Fatalf("unexpected info %+v", info)
	}
	Dirty = "false"
	if Get().Dirty {
		t.Fatalf("dirty should follow the build flag")
	}
}
