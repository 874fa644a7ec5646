package api

import (
	"mime/multipart"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/httputil"
	"github.com/quaverlib/quaver/utils/json/option"
	"github.com/quaverlib/quaver/utils/sendpart"
)

// Messages returns a slice filled with the most recent messages sent in the
// channel with the passed ID, newest first. The limit is capped at 100.
func (c *Client) Messages(
	channelID discord.ChannelID, limit uint) ([]discord.Message, error) {

	if limit == 0 || limit > 100 {
		limit = 100
	}

	var msgs []discord.Message
	return msgs, c.RequestJSON(
		&msgs, "GET",
		EndpointChannels+channelID.String()+"/messages",
		httputil.WithSchema(c, struct {
			Limit uint `schema:"limit"`
		}{limit}),
	)
}

// Message returns a specific message in the channel.
//
// If operating on a guild channel, this endpoint requires the
// READ_MESSAGE_HISTORY permission to be present on the current user.
func (c *Client) Message(
	channelID discord.ChannelID, messageID discord.MessageID) (*discord.Message, error) {

	var msg *discord.Message
	return msg, c.RequestJSON(
		&msg, "GET",
		EndpointChannels+channelID.String()+"/messages/"+messageID.String())
}

// SendMessage posts a message to a guild text or DM channel.
//
// If operating on a guild channel, this endpoint requires the SEND_MESSAGES
// permission to be present on the current user.
func (c *Client) SendMessage(
	channelID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error) {

	return c.SendMessageComplex(channelID, SendMessageData{
		Content: content,
		Embeds:  embeds,
	})
}

// SendMessageReply posts a reply to a message in a guild text or DM channel.
func (c *Client) SendMessageReply(
	channelID discord.ChannelID,
	content string, referenceID discord.MessageID) (*discord.Message, error) {

	return c.SendMessageComplex(channelID, SendMessageData{
		Content:   content,
		Reference: &discord.MessageReference{MessageID: referenceID},
	})
}

// SendEmbeds posts a message with embeds to a guild text or DM channel.
func (c *Client) SendEmbeds(
	channelID discord.ChannelID, e ...discord.Embed) (*discord.Message, error) {

	return c.SendMessageComplex(channelID, SendMessageData{
		Embeds: e,
	})
}

// EditMessageData is the data to edit a message with.
type EditMessageData struct {
	// Content is the new message content. Use an option.NullableString to
	// remove the content entirely.
	Content option.NullableString `json:"content,omitempty"`
	// Embeds are the new embedded rich content. A pointer to an empty slice
	// removes all embeds.
	Embeds *[]discord.Embed `json:"embeds,omitempty"`
	// AllowedMentions are the allowed mentions for the message.
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	// Attachments are the attached files to keep.
	Attachments *[]discord.Attachment `json:"attachments,omitempty"`
	// Flags edits the flags of a message. Only SuppressEmbeds can currently
	// be set or unset.
	Flags *discord.MessageFlags `json:"flags,omitempty"`

	Files []sendpart.File `json:"-"`
}

// NeedsMultipart returns true if the EditMessageData has files.
func (data EditMessageData) NeedsMultipart() bool {
	return len(data.Files) > 0
}

func (data EditMessageData) WriteMultipart(body *multipart.Writer) error {
	return sendpart.Write(body, data, data.Files)
}

// EditMessage edits a previously sent message.
//
// If the message was not sent by the current user, this endpoint requires the
// MANAGE_MESSAGES permission.
func (c *Client) EditMessage(
	channelID discord.ChannelID, messageID discord.MessageID,
	content string, embeds ...discord.Embed) (*discord.Message, error) {

	return c.EditMessageComplex(channelID, messageID, EditMessageData{
		Content: option.NewNullableString(content),
		Embeds:  &embeds,
	})
}

// EditMessageComplex edits a previously sent message.
func (c *Client) EditMessageComplex(
	channelID discord.ChannelID,
	messageID discord.MessageID, data EditMessageData) (*discord.Message, error) {

	if data.AllowedMentions != nil {
		if err := data.AllowedMentions.Verify(); err != nil {
			return nil, errors.Wrap(err, "allowedMentions error")
		}
	}

	if data.Embeds != nil {
		sum := 0
		for i := range *data.Embeds {
			if err := (*data.Embeds)[i].Validate(); err != nil {
				return nil, errors.Wrap(err, "embed error")
			}
			sum += (*data.Embeds)[i].Length()
			if sum > 6000 {
				return nil, &discord.OverboundError{
					Count: sum, Max: 6000, Thing: "sum of all text in embeds",
				}
			}
		}
	}

	var msg *discord.Message
	return msg, sendpart.PATCH(c.Client, data, &msg,
		EndpointChannels+channelID.String()+"/messages/"+messageID.String())
}

// DeleteMessage deletes a message.
//
// If operating on a guild channel and trying to delete a message that was not
// sent by the current user, this endpoint requires the MANAGE_MESSAGES
// permission.
func (c *Client) DeleteMessage(
	channelID discord.ChannelID, messageID discord.MessageID, reason AuditLogReason) error {

	return c.FastRequest(
		"DELETE",
		EndpointChannels+channelID.String()+"/messages/"+messageID.String(),
		httputil.WithHeaders(reason.Header()),
	)
}
