package params

import (
	"errors"
	"fmt"
)

// PlayerSchema lists the heterogeneous player generation parameters.
var PlayerSchema = &Schema{
	Head: "player_param",
	Columns: []Column{
		col("player_types", KindInt, "18"),
		col("subs_max", KindInt, "3"),
		col("pt_max", KindInt, "1"),
		col("allow_mult_default_type", KindBool, "0"),
		col("player_speed_max_delta_min", KindFloat, "0"),
		col("player_speed_max_delta_max", KindFloat, "0"),
		col("stamina_inc_max_delta_factor", KindFloat, "0"),
		col("player_decay_delta_min", KindFloat, "-0.1"),
		col("player_decay_delta_max", KindFloat, "0.1"),
		col("inertia_moment_delta_factor", KindFloat, "25"),
		col("dash_power_rate_delta_min", KindFloat, "0"),
		col("dash_power_rate_delta_max", KindFloat, "0"),
		col("player_size_delta_factor", KindFloat, "-100"),
		col("kickable_margin_delta_min", KindFloat, "-0.1"),
		col("kickable_margin_delta_max", KindFloat, "0.1"),
		col("kick_rand_delta_factor", KindFloat, "1"),
		col("extra_stamina_delta_min", KindFloat, "0"),
		col("extra_stamina_delta_max", KindFloat, "50"),
		col("effort_max_delta_factor", KindFloat, "-0.004"),
		col("effort_min_delta_factor", KindFloat, "-0.004"),
		col("random_seed", KindInt, "-1"),
		col("new_dash_power_rate_delta_min", KindFloat, "-0.0012"),
		col("new_dash_power_rate_delta_max", KindFloat, "0.0008"),
		col("new_stamina_inc_max_delta_factor", KindFloat, "-6000"),
		col("kick_power_rate_delta_min", KindFloat, "0"),
		col("kick_power_rate_delta_max", KindFloat, "0"),
		col("foul_detect_probability_delta_factor", KindFloat, "0"),
		col("catchable_area_l_stretch_min", KindFloat, "1"),
		col("catchable_area_l_stretch_max", KindFloat, "1.3"),
	},
}

// PlayerTypeSchema lists the attributes of one heterogeneous player type.
var PlayerTypeSchema = &Schema{
	Head: "player_type",
	Columns: []Column{
		col("id", KindInt, "0"),
		col("player_speed_max", KindFloat, "1.05"),
		col("stamina_inc_max", KindFloat, "45"),
		col("player_decay", KindFloat, "0.4"),
		col("inertia_moment", KindFloat, "5"),
		col("dash_power_rate", KindFloat, "0.006"),
		col("player_size", KindFloat, "0.3"),
		col("kickable_margin", KindFloat, "0.7"),
		col("kick_rand", KindFloat, "0.1"),
		col("extra_stamina", KindFloat, "50"),
		col("effort_max", KindFloat, "1"),
		col("effort_min", KindFloat, "0.6"),
		col("kick_power_rate", KindFloat, "0.027"),
		col("foul_detect_probability", KindFloat, "0.5"),
		col("catchable_area_l_stretch", KindFloat, "1"),
	},
}

// ParsePlayer decodes a player_param message. Any value that cannot be
// parsed fails the whole message.
func ParsePlayer(msg string) (Set, error) {
	return parseStrict(PlayerSchema, msg)
}

// ParsePlayerType decodes a player_type message leniently: the returned set
// is always usable, falling back to defaults for anything that could not be
// read, and every problem found is returned alongside it.
func ParsePlayerType(msg string) (Set, []error) {
	set, issues, err := decode(PlayerTypeSchema, msg)
	if err != nil {
		issues = append([]error{err}, issues...)
	}
	return set, issues
}

func parseStrict(schema *Schema, msg string) (Set, error) {
	set, issues, err := decode(schema, msg)
	if err != nil {
		return Set{}, err
	}
	if len(issues) > 0 {
		return Set{}, fmt.Errorf("decode %s: %w", schema.Head, errors.Join(issues...))
	}
	return set, nil
}
