package discord

import (
	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/utils/json"
)

// InteractionEvent describes the full incoming interaction event. It may be a
// gateway event or a webhook event.
type InteractionEvent struct {
	ID    InteractionID   `json:"id"`
	Data  InteractionData `json:"data"`
	AppID AppID           `json:"application_id"`
	Token string          `json:"token"`

	// Version is the read-only property, always 1.
	Version int `json:"version"`

	// Message is the message the component was attached to, if any.
	Message *Message `json:"message,omitempty"`

	// Member is only present if this came from a guild.
	Member  *Member `json:"member,omitempty"`
	GuildID GuildID `json:"guild_id,omitempty"`

	// User is only present if this didn't come from a guild.
	User      *User     `json:"user,omitempty"`
	ChannelID ChannelID `json:"channel_id,omitempty"`

	// AppPermissions is the set of permissions the app has in the source
	// channel of the interaction.
	AppPermissions Permissions `json:"app_permissions,omitempty"`
}

// Sender returns the sender of this event from either the Member field or the
// User field. If neither of those fields are available, then nil is returned.
func (e *InteractionEvent) Sender() *User {
	if e.User != nil {
		return e.User
	}
	if e.Member != nil {
		return &e.Member.User
	}
	return nil
}

// SenderID returns the sender's ID. See Sender for more information. If the
// sender's ID is not available, then 0 is returned.
func (e *InteractionEvent) SenderID() UserID {
	if sender := e.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}

func (e *InteractionEvent) UnmarshalJSON(b []byte) error {
	type event InteractionEvent

	target := struct {
		Type InteractionDataType `json:"type"`
		Data json.Raw            `json:"data"`
		*event
	}{
		event: (*event)(e),
	}

	if err := json.Unmarshal(b, &target); err != nil {
		return err
	}

	var err error

	switch target.Type {
	case PingInteractionType:
		e.Data = &PingInteraction{}
	case CommandInteractionType:
		v := &CommandInteraction{}
		err = target.Data.UnmarshalTo(v)
		e.Data = v
	case AutocompleteInteractionType:
		v := &AutocompleteInteraction{}
		err = target.Data.UnmarshalTo(v)
		e.Data = v
	default:
		e.Data = &UnknownInteractionData{
			Raw: target.Data,
			typ: target.Type,
		}
	}

	if err != nil {
		return errors.Wrap(err, "failed to unmarshal interaction event data")
	}

	return nil
}

func (e *InteractionEvent) MarshalJSON() ([]byte, error) {
	type event InteractionEvent

	if e.Data == nil {
		return nil, errors.New("missing InteractionEvent.Data")
	}

	v := struct {
		Type InteractionDataType `json:"type"`
		*event
	}{
		Type:  e.Data.InteractionType(),
		event: (*event)(e),
	}

	return json.Marshal(v)
}

// InteractionDataType is the type of each interaction event.
type InteractionDataType uint

const (
	PingInteractionType InteractionDataType = iota + 1
	CommandInteractionType
	ComponentInteractionType
	AutocompleteInteractionType
	ModalInteractionType
)

// InteractionData holds the respective data of an interaction.
type InteractionData interface {
	InteractionType() InteractionDataType
	data()
}

// PingInteraction is a ping interaction.
type PingInteraction struct{}

// InteractionType implements InteractionData.
func (*PingInteraction) InteractionType() InteractionDataType { return PingInteractionType }
func (*PingInteraction) data()                                {}

// CommandInteraction is a command interaction that Discord sends to us.
type CommandInteraction struct {
	ID      CommandID                 `json:"id"`
	Name    string                    `json:"name"`
	Options CommandInteractionOptions `json:"options"`

	// GuildID is the ID of the guild the command is registered to, if any.
	GuildID GuildID `json:"guild_id,omitempty"`
	// TargetID is the id of the user or message targeted by a user or
	// message command.
	TargetID Snowflake `json:"target_id,omitempty"`
}

// InteractionType implements InteractionData.
func (*CommandInteraction) InteractionType() InteractionDataType {
	return CommandInteractionType
}

func (*CommandInteraction) data() {}

// CommandInteractionOptions is a list of interaction options.
type CommandInteractionOptions []CommandInteractionOption

// Find returns the named option or the zero-value option if not found.
func (o CommandInteractionOptions) Find(name string) CommandInteractionOption {
	for _, opt := range o {
		if opt.Name == name {
			return opt
		}
	}
	return CommandInteractionOption{}
}

// CommandInteractionOption is an option for a command interaction.
type CommandInteractionOption struct {
	Type    CommandOptionType         `json:"type"`
	Name    string                    `json:"name"`
	Value   json.Raw                  `json:"value,omitempty"`
	Options CommandInteractionOptions `json:"options,omitempty"`
}

// String returns the value as a string.
func (o CommandInteractionOption) String() string {
	var value string
	if err := json.Unmarshal(o.Value, &value); err != nil {
		return string(o.Value)
	}
	return value
}

// IntValue reads the option's value as an int.
func (o CommandInteractionOption) IntValue() (int64, error) {
	var i int64
	err := o.Value.UnmarshalTo(&i)
	return i, err
}

// BoolValue reads the option's value as a bool.
func (o CommandInteractionOption) BoolValue() (bool, error) {
	var b bool
	err := o.Value.UnmarshalTo(&b)
	return b, err
}

// FloatValue reads the option's value as a float64.
func (o CommandInteractionOption) FloatValue() (float64, error) {
	var f float64
	err := o.Value.UnmarshalTo(&f)
	return f, err
}

// SnowflakeValue reads the option's value as a snowflake.
func (o CommandInteractionOption) SnowflakeValue() (Snowflake, error) {
	var id Snowflake
	err := o.Value.UnmarshalTo(&id)
	return id, err
}

// AutocompleteInteraction is an autocompletion interaction response.
type AutocompleteInteraction struct {
	CommandID CommandID           `json:"id"`
	Name      string              `json:"name"`
	Options   AutocompleteOptions `json:"options"`
}

// InteractionType implements InteractionData.
func (*AutocompleteInteraction) InteractionType() InteractionDataType {
	return AutocompleteInteractionType
}

func (*AutocompleteInteraction) data() {}

// AutocompleteOptions is a list of autocompletion options.
type AutocompleteOptions []AutocompleteOption

// Focused returns the option that the user is currently typing, or the
// zero-value option if none.
func (o AutocompleteOptions) Focused() AutocompleteOption {
	for _, opt := range o {
		if opt.Focused {
			return opt
		}
	}
	return AutocompleteOption{}
}

// Find returns the named option or the zero-value option if not found.
func (o AutocompleteOptions) Find(name string) AutocompleteOption {
	for _, opt := range o {
		if opt.Name == name {
			return opt
		}
	}
	return AutocompleteOption{}
}

// AutocompleteOption is an option for an autocomplete interaction.
type AutocompleteOption struct {
	Type    CommandOptionType   `json:"type"`
	Name    string              `json:"name"`
	Value   json.Raw            `json:"value,omitempty"`
	Focused bool                `json:"focused,omitempty"`
	Options AutocompleteOptions `json:"options,omitempty"`
}

// String returns the value as a string.
func (o AutocompleteOption) String() string {
	var value string
	if err := json.Unmarshal(o.Value, &value); err != nil {
		return string(o.Value)
	}
	return value
}

// UnknownInteractionData describes an unknown interaction.
type UnknownInteractionData struct {
	json.Raw
	typ InteractionDataType
}

// InteractionType implements InteractionData.
func (u *UnknownInteractionData) InteractionType() InteractionDataType {
	return u.typ
}

func (u *UnknownInteractionData) data() {}
