//go:build climbdebug

package progression

import "testing"

func TestInvalidLevelPanicsInDebugBuilds(t *testing.T) {
	m := newTestManager(t, nil)

	defer func() {
		if recover() == nil {
			t.Error("LevelConfig(0) should panic in climbdebug builds")
		}
	}()
	m.LevelConfig(0)
}
