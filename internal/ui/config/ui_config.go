package ui_config

type Config struct { //nolint:maligned
	Front struct {
		MsgError        string `hcl:"msg_error"`
		MsgStateBroken  string `hcl:"msg_broken"`
		MsgStateIntro   string `hcl:"msg_intro"`
		ResetTimeoutSec int    `hcl:"reset_sec"`
	}
}
