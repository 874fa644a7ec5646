package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/httputil"
	"github.com/quaverlib/quaver/utils/httputil/httpdriver"
	"github.com/quaverlib/quaver/utils/json/option"
)

// mockClient returns an API client whose requests are answered by do.
func mockClient(t *testing.T, do func(req *httpdriver.MockRequest) (httpdriver.Response, error)) *Client {
	t.Helper()

	httpClient := httputil.NewClient()
	httpClient.Client = &httpdriver.MockClient{DoFunc: do}

	return NewCustomClient("Bot token", httpClient)
}

func jsonResponse(status int, v interface{}) httpdriver.Response {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return &httpdriver.MockResponse{
		Status: status,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   b,
	}
}

func TestClientAuthorization(t *testing.T) {
	var gotAuth, gotUA string

	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		gotUA = req.Header.Get("User-Agent")
		return jsonResponse(200, discord.User{ID: 1234, Username: "quaver"}), nil
	})

	u, err := client.Me()
	if err != nil {
		t.Fatal("failed to get self:", err)
	}

	if u.ID != 1234 {
		t.Error("unexpected user ID:", u.ID)
	}
	if gotAuth != "Bot token" {
		t.Error("unexpected Authorization header:", gotAuth)
	}
	if gotUA != UserAgent {
		t.Error("unexpected User-Agent header:", gotUA)
	}
}

func TestSendMessage(t *testing.T) {
	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		if req.Method != "POST" {
			t.Error("unexpected method:", req.Method)
		}

		wantPath := APIPath + "/channels/666/messages"
		if req.GetPath() != wantPath {
			t.Errorf("unexpected path: got %q, want %q", req.GetPath(), wantPath)
		}

		var data SendMessageData
		if err := json.Unmarshal(req.Body, &data); err != nil {
			t.Fatal("failed to decode request body:", err)
		}
		if data.Content != "hello world" {
			t.Error("unexpected content:", data.Content)
		}

		return jsonResponse(200, discord.Message{
			ID:        999,
			ChannelID: 666,
			Content:   data.Content,
		}), nil
	})

	m, err := client.SendMessage(666, "hello world")
	if err != nil {
		t.Fatal("failed to send message:", err)
	}

	if m.ID != 999 || m.Content != "hello world" {
		t.Errorf("unexpected message returned: %#v", m)
	}
}

func TestSendMessageEmpty(t *testing.T) {
	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		t.Fatal("request was sent for an empty message")
		return nil, nil
	})

	if _, err := client.SendMessageComplex(666, SendMessageData{}); err != ErrEmptyMessage {
		t.Error("expected ErrEmptyMessage, got:", err)
	}
}

func TestSendMessageOverboundEmbed(t *testing.T) {
	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		t.Fatal("request was sent for an overbound embed")
		return nil, nil
	})

	title := make([]byte, 257)
	for i := range title {
		title[i] = 'a'
	}

	_, err := client.SendMessageComplex(666, SendMessageData{
		Embeds: []discord.Embed{{Title: string(title)}},
	})
	if err == nil {
		t.Fatal("expected an embed validation error")
	}
}

func TestHTTPError(t *testing.T) {
	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		return &httpdriver.MockResponse{
			Status: 403,
			Body:   []byte(`{"code": 50013, "message": "Missing Permissions"}`),
		}, nil
	})

	_, err := client.Message(666, 999)
	if err == nil {
		t.Fatal("expected an HTTP error")
	}

	httpErr, ok := err.(*httputil.HTTPError)
	if !ok {
		t.Fatal("expected *httputil.HTTPError, got:", err)
	}

	if httpErr.Status != 403 {
		t.Error("unexpected status:", httpErr.Status)
	}
	if httpErr.Code != 50013 {
		t.Error("unexpected error code:", httpErr.Code)
	}
	if httpErr.Message != "Missing Permissions" {
		t.Error("unexpected message:", httpErr.Message)
	}
}

func TestRespondInteraction(t *testing.T) {
	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		wantPath := APIPath + "/interactions/123/tokenhere/callback"
		if req.GetPath() != wantPath {
			t.Errorf("unexpected path: got %q, want %q", req.GetPath(), wantPath)
		}

		var resp struct {
			Type InteractionResponseType `json:"type"`
			Data struct {
				Content string `json:"content"`
			} `json:"data"`
		}
		if err := json.Unmarshal(req.Body, &resp); err != nil {
			t.Fatal("failed to decode request body:", err)
		}

		if resp.Type != MessageInteractionWithSource {
			t.Error("unexpected response type:", resp.Type)
		}
		if resp.Data.Content != "pong" {
			t.Error("unexpected content:", resp.Data.Content)
		}

		return &httpdriver.MockResponse{Status: 204}, nil
	})

	err := client.RespondInteraction(123, "tokenhere", InteractionResponse{
		Type: MessageInteractionWithSource,
		Data: &InteractionResponseData{
			Content: option.NewNullableString("pong"),
		},
	})
	if err != nil {
		t.Fatal("failed to respond to interaction:", err)
	}
}

func TestBulkOverwriteCommands(t *testing.T) {
	client := mockClient(t, func(req *httpdriver.MockRequest) (httpdriver.Response, error) {
		if req.Method != "PUT" {
			t.Error("unexpected method:", req.Method)
		}

		var cmds []discord.Command
		if err := json.Unmarshal(req.Body, &cmds); err != nil {
			t.Fatal("failed to decode request body:", err)
		}
		if len(cmds) != 1 || cmds[0].Name != "gas" {
			t.Errorf("unexpected commands sent: %#v", cmds)
		}

		// Echo the commands back with IDs, like Discord does.
		cmds[0].ID = 1
		return jsonResponse(200, cmds), nil
	})

	cmds, err := client.BulkOverwriteCommands(4444, []discord.Command{
		{Name: "gas", Description: "show gas prices"},
	})
	if err != nil {
		t.Fatal("failed to overwrite commands:", err)
	}

	if len(cmds) != 1 || !cmds[0].ID.IsValid() {
		t.Errorf("unexpected commands returned: %#v", cmds)
	}
}
