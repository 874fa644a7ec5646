package rate

import "testing"

func TestParseBucketKey(t *testing.T) {
	var tests = [][2]string{
		{"/guilds/123123/messages", "/guilds/123123/messages"},
		{"/guilds/123123/", "/guilds/123123/"},
		{"/channels/123131231", "/channels/123131231"},
		{"/channels/123123/messages/123456", "/channels/123123/messages/"},
		{"/users/123123", "/users/"},
		{"/users/123123/", "/users//"},
		{"/channels/123123/messages/123456?around=539954563541827594",
			"/channels/123123/messages/"},
		{"/guilds/123123/members/456456", "/guilds/123123/members/"},
		{"/webhooks/123123/abcdef", "/webhooks//abcdef"},
	}

	for _, conds := range tests {
		key := ParseBucketKey(conds[0])
		if key != conds[1] {
			t.Fatalf("expected/got\n%s\n%s", conds[1], key)
		}
	}
}
