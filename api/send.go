package api

import (
	"mime/multipart"
	"strconv"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/sendpart"
)

// ErrEmptyMessage is returned if a message payload has no content, embeds and
// files.
var ErrEmptyMessage = errors.New("message is empty")

// AllowedMentions is a whitelist of mentions for a message.
//
// # Whitelists
//
// Roles and Users act as whitelists of IDs that are allowed to be mentioned.
// If only one ID is provided in Users, then only that ID will be parsed in
// the message. If Parse, Users and Roles are all empty, no mentions are
// parsed at all.
//
// # Constraints
//
// If the Users slice is not empty, then Parse must not have
// AllowUserMention, and likewise for Roles and AllowRoleMention, since
// everything in Parse is parsed completely.
type AllowedMentions struct {
	Parse []AllowedMentionType `json:"parse"`
	Roles []discord.RoleID     `json:"roles,omitempty"` // max 100
	Users []discord.UserID     `json:"users,omitempty"` // max 100

	// RepliedUser pings the author of the message being replied to.
	RepliedUser bool `json:"replied_user,omitempty"`
}

// AllowedMentionType tells Discord what is allowed to be parsed from message
// content, to help prevent things like an unintentional @everyone mention.
type AllowedMentionType string

const (
	// AllowRoleMention makes Discord parse roles in the content.
	AllowRoleMention AllowedMentionType = "roles"
	// AllowUserMention makes Discord parse user mentions in the content.
	AllowUserMention AllowedMentionType = "users"
	// AllowEveryoneMention makes Discord parse @everyone mentions.
	AllowEveryoneMention AllowedMentionType = "everyone"
)

// Verify checks the AllowedMentions against the constraints mentioned in its
// documentation. It is called by SendMessageComplex.
func (am AllowedMentions) Verify() error {
	if len(am.Roles) > 100 {
		return errors.Errorf("roles slice length %d is over 100", len(am.Roles))
	}
	if len(am.Users) > 100 {
		return errors.Errorf("users slice length %d is over 100", len(am.Users))
	}

	for _, allowed := range am.Parse {
		switch allowed {
		case AllowRoleMention:
			if len(am.Roles) > 0 {
				return errors.New("parse has AllowRoleMention and Roles slice is not empty")
			}
		case AllowUserMention:
			if len(am.Users) > 0 {
				return errors.New("parse has AllowUserMention and Users slice is not empty")
			}
		}
	}

	return nil
}

// SendMessageData is the full structure to send a new message to Discord
// with.
type SendMessageData struct {
	// Content is the message content. One of Content, Embeds and Files must
	// not be empty.
	Content string `json:"content,omitempty"`
	// Nonce is used for validating that a message was sent.
	Nonce string `json:"nonce,omitempty"`

	TTS    bool            `json:"tts,omitempty"`
	Embeds []discord.Embed `json:"embeds,omitempty"`

	Files []sendpart.File `json:"-"`

	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`

	// Reference sends the message as a reply to another message.
	Reference *discord.MessageReference `json:"message_reference,omitempty"`

	Flags discord.MessageFlags `json:"flags,omitempty"`
}

// NeedsMultipart returns true if the SendMessageData has files.
func (data SendMessageData) NeedsMultipart() bool {
	return len(data.Files) > 0
}

func (data SendMessageData) WriteMultipart(body *multipart.Writer) error {
	return sendpart.Write(body, data, data.Files)
}

// SendMessageComplex posts a message to a guild text or DM channel. If
// operating on a guild channel, this requires the SEND_MESSAGES permission.
//
// Fires a MessageCreate gateway event.
func (c *Client) SendMessageComplex(
	channelID discord.ChannelID, data SendMessageData) (*discord.Message, error) {

	if data.Content == "" && len(data.Embeds) == 0 && len(data.Files) == 0 {
		return nil, ErrEmptyMessage
	}

	if data.AllowedMentions != nil {
		if err := data.AllowedMentions.Verify(); err != nil {
			return nil, errors.Wrap(err, "allowedMentions error")
		}
	}

	sum := 0
	for i := range data.Embeds {
		if err := data.Embeds[i].Validate(); err != nil {
			return nil, errors.Wrap(err, "embed error at "+strconv.Itoa(i))
		}
		sum += data.Embeds[i].Length()
		if sum > 6000 {
			return nil, &discord.OverboundError{
				Count: sum, Max: 6000, Thing: "sum of all text in embeds",
			}
		}
	}

	var msg *discord.Message
	return msg, sendpart.POST(c.Client, data, &msg,
		EndpointChannels+channelID.String()+"/messages")
}
