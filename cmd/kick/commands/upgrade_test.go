package commands

import "testing"

func TestUpgradeCommandFlags(t *testing.T) {
	for _, flag := range []string{"all", "dry-run"} {
		if upgradeCmd.Flags().Lookup(flag) == nil {
			t.Errorf("--%s flag should be defined", flag)
		}
	}
}

func TestUpgradeAllConflictsWithNames(t *testing.T) {
	upgradeAll = true
	t.Cleanup(func() { upgradeAll = false })

	if err := runUpgrade(upgradeCmd, []string{"bun"}); err == nil {
		t.Error("expected an error combining --all with tool names")
	}
}
