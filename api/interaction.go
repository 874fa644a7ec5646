package api

import (
	"mime/multipart"
	"strconv"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/json/option"
	"github.com/quaverlib/quaver/utils/sendpart"
)

var (
	EndpointInteractions = Endpoint + "interactions/"
	EndpointWebhooks     = Endpoint + "webhooks/"
)

// InteractionResponseType is the type of an interaction callback.
type InteractionResponseType uint

const (
	PongInteraction InteractionResponseType = iota + 1
	_
	_
	MessageInteractionWithSource
	DeferredMessageInteractionWithSource
	DeferredMessageUpdate
	UpdateMessage
	AutocompleteResult
)

// InteractionResponse is a response to an incoming interaction.
type InteractionResponse struct {
	Type InteractionResponseType  `json:"type"`
	Data *InteractionResponseData `json:"data,omitempty"`
}

// NeedsMultipart returns true if the InteractionResponse has files.
func (resp InteractionResponse) NeedsMultipart() bool {
	return resp.Data != nil && resp.Data.NeedsMultipart()
}

func (resp InteractionResponse) WriteMultipart(body *multipart.Writer) error {
	return sendpart.Write(body, resp, resp.Data.Files)
}

// InteractionResponseData is the payload of an interaction response.
type InteractionResponseData struct {
	// Content are the message contents (up to 2000 characters).
	//
	// Required: one of content, files, embeds.
	Content option.NullableString `json:"content,omitempty"`
	// TTS is true if this is a TTS message.
	TTS bool `json:"tts,omitempty"`
	// Embeds contains embedded rich content.
	Embeds *[]discord.Embed `json:"embeds,omitempty"`
	// AllowedMentions are the allowed mentions for the message.
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	// Flags are the message's flags. Only EphemeralMessage and
	// SuppressEmbeds can be set.
	Flags discord.MessageFlags `json:"flags,omitempty"`

	// Choices are the autocomplete choices. Only valid for responses of type
	// AutocompleteResult.
	Choices AutocompleteChoices `json:"choices,omitempty"`

	// Files represents a list of files to upload. This will not be
	// JSON-encoded and will only be available through WriteMultipart.
	Files []sendpart.File `json:"-"`
}

// NeedsMultipart returns true if the InteractionResponseData has files.
func (d InteractionResponseData) NeedsMultipart() bool {
	return len(d.Files) > 0
}

func (d InteractionResponseData) WriteMultipart(body *multipart.Writer) error {
	return sendpart.Write(body, d, d.Files)
}

// AutocompleteChoices are the choices to send back to Discord when responding
// to an autocomplete interaction.
type AutocompleteChoices interface {
	choices()
}

// AutocompleteStringChoices are string choices in an autocomplete response.
type AutocompleteStringChoices []discord.StringChoice

func (AutocompleteStringChoices) choices() {}

// AutocompleteIntegerChoices are integer choices in an autocomplete response.
type AutocompleteIntegerChoices []discord.IntegerChoice

func (AutocompleteIntegerChoices) choices() {}

// RespondInteraction responds to an incoming interaction. It is also known as
// an "interaction callback".
func (c *Client) RespondInteraction(
	id discord.InteractionID, token string, resp InteractionResponse) error {

	if resp.Data != nil {
		switch resp.Type {
		case MessageInteractionWithSource:
			// A response data must exist and be valid for this type.
			sent := resp.Data.Content != nil && resp.Data.Content.Init
			if !sent && resp.Data.Embeds == nil && len(resp.Data.Files) == 0 {
				return ErrEmptyMessage
			}
		case DeferredMessageInteractionWithSource, DeferredMessageUpdate:
			// Deferred responses only carry flags, if anything.
		}

		if resp.Data.AllowedMentions != nil {
			if err := resp.Data.AllowedMentions.Verify(); err != nil {
				return errors.Wrap(err, "allowedMentions error")
			}
		}

		if resp.Data.Embeds != nil {
			sum := 0
			for i := range *resp.Data.Embeds {
				if err := (*resp.Data.Embeds)[i].Validate(); err != nil {
					return errors.Wrap(err, "embed error at "+strconv.Itoa(i))
				}
				sum += (*resp.Data.Embeds)[i].Length()
				if sum > 6000 {
					return &discord.OverboundError{
						Count: sum, Max: 6000, Thing: "sum of all text in embeds",
					}
				}
			}
		}
	}

	URL := EndpointInteractions + id.String() + "/" + token + "/callback"
	return sendpart.POST(c.Client, resp, nil, URL)
}

// OriginalInteractionResponse returns the initial interaction response.
func (c *Client) OriginalInteractionResponse(
	appID discord.AppID, token string) (*discord.Message, error) {

	var m *discord.Message
	return m, c.RequestJSON(
		&m, "GET",
		EndpointWebhooks+appID.String()+"/"+token+"/messages/@original")
}

// EditInteractionResponseData is the data to edit an interaction response
// or followup with.
type EditInteractionResponseData struct {
	// Content is the new message contents (up to 2000 characters).
	Content option.NullableString `json:"content,omitempty"`
	// Embeds contains embedded rich content.
	Embeds *[]discord.Embed `json:"embeds,omitempty"`
	// AllowedMentions are the allowed mentions for the message.
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	// Attachments are the attached files to keep.
	Attachments *[]discord.Attachment `json:"attachments,omitempty"`

	Files []sendpart.File `json:"-"`
}

// NeedsMultipart returns true if the EditInteractionResponseData has files.
func (data EditInteractionResponseData) NeedsMultipart() bool {
	return len(data.Files) > 0
}

func (data EditInteractionResponseData) WriteMultipart(body *multipart.Writer) error {
	return sendpart.Write(body, data, data.Files)
}

// EditOriginalInteractionResponse edits the initial interaction response.
func (c *Client) EditOriginalInteractionResponse(
	appID discord.AppID,
	token string, data EditInteractionResponseData) (*discord.Message, error) {

	return c.editInteractionResponse(data,
		EndpointWebhooks+appID.String()+"/"+token+"/messages/@original")
}

// DeleteOriginalInteractionResponse deletes the initial interaction response.
func (c *Client) DeleteOriginalInteractionResponse(appID discord.AppID, token string) error {
	return c.FastRequest("DELETE",
		EndpointWebhooks+appID.String()+"/"+token+"/messages/@original")
}

// CreateInteractionFollowup creates a followup message for an interaction.
func (c *Client) CreateInteractionFollowup(
	appID discord.AppID, token string, data InteractionResponseData) (*discord.Message, error) {

	sent := data.Content != nil && data.Content.Init
	if !sent && data.Embeds == nil && len(data.Files) == 0 {
		return nil, ErrEmptyMessage
	}

	if data.AllowedMentions != nil {
		if err := data.AllowedMentions.Verify(); err != nil {
			return nil, errors.Wrap(err, "allowedMentions error")
		}
	}

	if data.Embeds != nil {
		sum := 0
		for i := range *data.Embeds {
			if err := (*data.Embeds)[i].Validate(); err != nil {
				return nil, errors.Wrap(err, "embed error at "+strconv.Itoa(i))
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
	return msg, sendpart.POST(
		c.Client, data, &msg, EndpointWebhooks+appID.String()+"/"+token)
}

// EditInteractionFollowup edits a followup message for an interaction.
func (c *Client) EditInteractionFollowup(
	appID discord.AppID, messageID discord.MessageID,
	token string, data EditInteractionResponseData) (*discord.Message, error) {

	return c.editInteractionResponse(data,
		EndpointWebhooks+appID.String()+"/"+token+"/messages/"+messageID.String())
}

// DeleteInteractionFollowup deletes a followup message for an interaction.
func (c *Client) DeleteInteractionFollowup(
	appID discord.AppID, messageID discord.MessageID, token string) error {

	return c.FastRequest("DELETE",
		EndpointWebhooks+appID.String()+"/"+token+"/messages/"+messageID.String())
}

func (c *Client) editInteractionResponse(
	data EditInteractionResponseData, url string) (*discord.Message, error) {

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
	return msg, sendpart.PATCH(c.Client, data, &msg, url)
}
