package discord

import (
	"time"

	"github.com/quaverlib/quaver/utils/json"
)

// CommandType is the type of the command, which describes the intended
// invocation source of the command.
type CommandType uint

const (
	ChatInputCommand CommandType = iota + 1
	UserCommand
	MessageCommand
)

// Command is the base "command" model that belongs to an application.
type Command struct {
	// ID is the unique id of the command.
	ID CommandID `json:"id"`
	// Type is the intended source of the command.
	Type CommandType `json:"type,omitempty"`
	// AppID is the unique id of the parent application.
	AppID AppID `json:"application_id"`
	// GuildID is the guild id of the command, if not global.
	GuildID GuildID `json:"guild_id,omitempty"`
	// Name is the 1-32 character name.
	Name string `json:"name"`
	// Description is the 1-100 character description.
	Description string `json:"description"`
	// Options are the parameters for the command. Its types are value types,
	// which can either be a subcommand or an argument option.
	//
	// Note that required options must be listed before optional options.
	Options CommandOptions `json:"options,omitempty"`
	// DefaultMemberPermissions is the set of permissions required to use the
	// command by default.
	DefaultMemberPermissions *Permissions `json:"default_member_permissions,omitempty"`
	// NoDMPermission indicates whether the command is NOT available in DMs
	// with the app, only for globally-scoped commands.
	NoDMPermission bool `json:"-"`
	// NoDefaultPermission defines whether the command is NOT enabled by
	// default when the app is added to a guild.
	NoDefaultPermission bool `json:"-"`
}

// CreatedAt returns a time object representing when the command was created.
func (c *Command) CreatedAt() time.Time {
	return Snowflake(c.ID).Time()
}

func (c *Command) MarshalJSON() ([]byte, error) {
	type RawCommand Command
	cmd := struct {
		*RawCommand
		DMPermission      bool `json:"dm_permission"`
		DefaultPermission bool `json:"default_permission"`
	}{
		RawCommand: (*RawCommand)(c),
		// Discord defaults these to true, so we invert our zero values.
		DMPermission:      !c.NoDMPermission,
		DefaultPermission: !c.NoDefaultPermission,
	}

	return json.Marshal(cmd)
}

func (c *Command) UnmarshalJSON(data []byte) error {
	type RawCommand Command

	cmd := struct {
		*RawCommand
		DMPermission      bool `json:"dm_permission"`
		DefaultPermission bool `json:"default_permission"`
	}{
		RawCommand:        (*RawCommand)(c),
		DMPermission:      true,
		DefaultPermission: true,
	}

	if err := json.Unmarshal(data, &cmd); err != nil {
		return err
	}

	c.NoDMPermission = !cmd.DMPermission
	c.NoDefaultPermission = !cmd.DefaultPermission

	// Discord defaults type to 1 if omitted.
	if c.Type == 0 {
		c.Type = ChatInputCommand
	}

	return nil
}

// CommandOptions is a list of command options.
type CommandOptions []CommandOption

// CommandOptionType is the enumerated integer type for command options.
type CommandOptionType uint

const (
	SubcommandOptionType CommandOptionType = iota + 1
	SubcommandGroupOptionType
	StringOptionType
	IntegerOptionType
	BooleanOptionType
	UserOptionType
	ChannelOptionType
	RoleOptionType
	MentionableOptionType
	NumberOptionType
	AttachmentOptionType
)

// CommandOption is a union of command option types. The constructors for
// CommandOption will hint the types that can be a CommandOption.
type CommandOption interface {
	Name() string
	Type() CommandOptionType
}

// NewSubcommandOption creates a new subcommand option.
func NewSubcommandOption(name, description string, options ...CommandOptionValue) *SubcommandOption {
	return &SubcommandOption{
		OptionName:  name,
		Description: description,
		Options:     options,
	}
}

// SubcommandOption is a subcommand option that fits into a subcommand group
// or a command.
type SubcommandOption struct {
	OptionName  string `json:"name"`
	Description string `json:"description"`
	// Options are the subcommand's options.
	Options []CommandOptionValue `json:"options,omitempty"`
}

// Name implements CommandOption.
func (s *SubcommandOption) Name() string { return s.OptionName }

// Type implements CommandOption.
func (s *SubcommandOption) Type() CommandOptionType { return SubcommandOptionType }

func (s *SubcommandOption) MarshalJSON() ([]byte, error) {
	type raw SubcommandOption
	return marshalOptionWithType((*raw)(s), SubcommandOptionType)
}

// CommandOptionValue is a subcommand option or an argument option. It is any
// CommandOption that is not a subcommand or a subcommand group.
type CommandOptionValue interface {
	CommandOption
	_val()
}

// NewStringOption creates a new string option.
func NewStringOption(name, description string, required bool) *StringOption {
	return &StringOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// StringOption is a string option.
type StringOption struct {
	OptionName  string         `json:"name"`
	Description string         `json:"description"`
	Required    bool           `json:"required,omitempty"`
	Choices     []StringChoice `json:"choices,omitempty"`
	// Autocomplete must not be true if Choices are present.
	Autocomplete bool `json:"autocomplete,omitempty"`
}

// Name implements CommandOption.
func (s *StringOption) Name() string { return s.OptionName }

// Type implements CommandOption.
func (s *StringOption) Type() CommandOptionType { return StringOptionType }
func (s *StringOption) _val()                   {}

func (s *StringOption) MarshalJSON() ([]byte, error) {
	type raw StringOption
	return marshalOptionWithType((*raw)(s), StringOptionType)
}

// StringChoice is a pair of string key and a string.
type StringChoice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewIntegerOption creates a new integer option.
func NewIntegerOption(name, description string, required bool) *IntegerOption {
	return &IntegerOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// IntegerOption is an integer option.
type IntegerOption struct {
	OptionName  string          `json:"name"`
	Description string          `json:"description"`
	Required    bool            `json:"required,omitempty"`
	Min         *int            `json:"min_value,omitempty"`
	Max         *int            `json:"max_value,omitempty"`
	Choices     []IntegerChoice `json:"choices,omitempty"`
}

// Name implements CommandOption.
func (i *IntegerOption) Name() string { return i.OptionName }

// Type implements CommandOption.
func (i *IntegerOption) Type() CommandOptionType { return IntegerOptionType }
func (i *IntegerOption) _val()                   {}

func (i *IntegerOption) MarshalJSON() ([]byte, error) {
	type raw IntegerOption
	return marshalOptionWithType((*raw)(i), IntegerOptionType)
}

// IntegerChoice is a pair of string key and an integer.
type IntegerChoice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// NewNumberOption creates a new number option.
func NewNumberOption(name, description string, required bool) *NumberOption {
	return &NumberOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// NumberOption is a double option.
type NumberOption struct {
	OptionName  string   `json:"name"`
	Description string   `json:"description"`
	Required    bool     `json:"required,omitempty"`
	Min         *float64 `json:"min_value,omitempty"`
	Max         *float64 `json:"max_value,omitempty"`
}

// Name implements CommandOption.
func (n *NumberOption) Name() string { return n.OptionName }

// Type implements CommandOption.
func (n *NumberOption) Type() CommandOptionType { return NumberOptionType }
func (n *NumberOption) _val()                   {}

func (n *NumberOption) MarshalJSON() ([]byte, error) {
	type raw NumberOption
	return marshalOptionWithType((*raw)(n), NumberOptionType)
}

// NewBooleanOption creates a new boolean option.
func NewBooleanOption(name, description string, required bool) *BooleanOption {
	return &BooleanOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// BooleanOption is a boolean option.
type BooleanOption struct {
	OptionName  string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Name implements CommandOption.
func (b *BooleanOption) Name() string { return b.OptionName }

// Type implements CommandOption.
func (b *BooleanOption) Type() CommandOptionType { return BooleanOptionType }
func (b *BooleanOption) _val()                   {}

func (b *BooleanOption) MarshalJSON() ([]byte, error) {
	type raw BooleanOption
	return marshalOptionWithType((*raw)(b), BooleanOptionType)
}

// NewUserOption creates a new user option.
func NewUserOption(name, description string, required bool) *UserOption {
	return &UserOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// UserOption is a user option.
type UserOption struct {
	OptionName  string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Name implements CommandOption.
func (u *UserOption) Name() string { return u.OptionName }

// Type implements CommandOption.
func (u *UserOption) Type() CommandOptionType { return UserOptionType }
func (u *UserOption) _val()                   {}

func (u *UserOption) MarshalJSON() ([]byte, error) {
	type raw UserOption
	return marshalOptionWithType((*raw)(u), UserOptionType)
}

// NewChannelOption creates a new channel option.
func NewChannelOption(name, description string, required bool) *ChannelOption {
	return &ChannelOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// ChannelOption is a channel option.
type ChannelOption struct {
	OptionName   string        `json:"name"`
	Description  string        `json:"description"`
	Required     bool          `json:"required,omitempty"`
	ChannelTypes []ChannelType `json:"channel_types,omitempty"`
}

// Name implements CommandOption.
func (c *ChannelOption) Name() string { return c.OptionName }

// Type implements CommandOption.
func (c *ChannelOption) Type() CommandOptionType { return ChannelOptionType }
func (c *ChannelOption) _val()                   {}

func (c *ChannelOption) MarshalJSON() ([]byte, error) {
	type raw ChannelOption
	return marshalOptionWithType((*raw)(c), ChannelOptionType)
}

// NewRoleOption creates a new role option.
func NewRoleOption(name, description string, required bool) *RoleOption {
	return &RoleOption{
		OptionName:  name,
		Description: description,
		Required:    required,
	}
}

// RoleOption is a role option.
type RoleOption struct {
	OptionName  string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Name implements CommandOption.
func (r *RoleOption) Name() string { return r.OptionName }

// Type implements CommandOption.
func (r *RoleOption) Type() CommandOptionType { return RoleOptionType }
func (r *RoleOption) _val()                   {}

func (r *RoleOption) MarshalJSON() ([]byte, error) {
	type raw RoleOption
	return marshalOptionWithType((*raw)(r), RoleOptionType)
}

// marshalOptionWithType injects the "type" field into an option's JSON
// encoding, since the option structs carry their type in the Go type system
// instead of a struct field.
func marshalOptionWithType(v interface{}, t CommandOptionType) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	typ, err := json.Marshal(struct {
		Type CommandOptionType `json:"type"`
	}{t})
	if err != nil {
		return nil, err
	}

	if len(b) == 2 { // "{}"
		return typ, nil
	}

	// Splice the type object and the value object together.
	out := make([]byte, 0, len(b)+len(typ))
	out = append(out, typ[:len(typ)-1]...)
	out = append(out, ',')
	out = append(out, b[1:]...)
	return out, nil
}
