package params

// ServerSchema lists the server parameters in table order. Later protocol
// revisions append to the end so older tables stay a prefix of newer ones.
var ServerSchema = &Schema{
	Head: "server_param",
	Columns: []Column{
		col("goal_width", KindFloat, "14.02"),
		col("inertia_moment", KindFloat, "5"),

		col("player_size", KindFloat, "0.3"),
		col("player_decay", KindFloat, "0.4"),
		col("player_rand", KindFloat, "0.1"),
		col("player_weight", KindFloat, "60"),
		col("player_speed_max", KindFloat, "1.05"),
		col("player_accel_max", KindFloat, "1"),

		col("stamina_max", KindFloat, "8000"),
		col("stamina_inc_max", KindFloat, "45"),

		col("recover_init", KindFloat, "1"),
		col("recover_dec_thr", KindFloat, "0.3"),
		col("recover_min", KindFloat, "0.5"),
		col("recover_dec", KindFloat, "0.002"),

		col("effort_init", KindFloat, "1"),
		col("effort_dec_thr", KindFloat, "0.3"),
		col("effort_min", KindFloat, "0.6"),
		col("effort_dec", KindFloat, "0.005"),
		col("effort_inc_thr", KindFloat, "0.6"),
		col("effort_inc", KindFloat, "0.01"),

		col("kick_rand", KindFloat, "0.1"),
		col("team_actuator_noise", KindBool, "0"),
		col("prand_factor_l", KindFloat, "1"),
		col("prand_factor_r", KindFloat, "1"),
		col("kick_rand_factor_l", KindFloat, "1"),
		col("kick_rand_factor_r", KindFloat, "1"),

		col("ball_size", KindFloat, "0.085"),
		col("ball_decay", KindFloat, "0.94"),
		col("ball_rand", KindFloat, "0.05"),
		col("ball_weight", KindFloat, "0.2"),
		col("ball_speed_max", KindFloat, "3"),
		col("ball_accel_max", KindFloat, "2.7"),

		col("dash_power_rate", KindFloat, "0.006"),
		col("kick_power_rate", KindFloat, "0.027"),
		col("kickable_margin", KindFloat, "0.7"),
		col("control_radius", KindFloat, "2"),

		col("maxpower", KindFloat, "100"),
		col("minpower", KindFloat, "-100"),
		col("maxmoment", KindFloat, "180"),
		col("minmoment", KindFloat, "-180"),
		col("maxneckmoment", KindFloat, "180"),
		col("minneckmoment", KindFloat, "-180"),
		col("maxneckang", KindFloat, "90"),
		col("minneckang", KindFloat, "-90"),

		col("visible_angle", KindFloat, "90"),
		col("visible_distance", KindFloat, "3"),

		col("wind_dir", KindFloat, "0"),
		col("wind_force", KindFloat, "0"),
		col("wind_ang", KindFloat, "0"),
		col("wind_rand", KindFloat, "0"),

		col("catchable_area_l", KindFloat, "1.2"),
		col("catchable_area_w", KindFloat, "1"),
		col("catch_probability", KindFloat, "1"),
		col("goalie_max_moves", KindInt, "2"),

		col("ckick_margin", KindFloat, "1"),
		col("offside_active_area_size", KindFloat, "2.5"),

		col("wind_none", KindBool, "0"),
		col("wind_random", KindBool, "0"),

		col("say_coach_cnt_max", KindInt, "128"),
		col("say_coach_msg_size", KindInt, "128"),

		col("clang_win_size", KindInt, "300"),
		col("clang_define_win", KindInt, "1"),
		col("clang_meta_win", KindInt, "1"),
		col("clang_advice_win", KindInt, "1"),
		col("clang_info_win", KindInt, "1"),
		col("clang_mess_delay", KindInt, "50"),
		col("clang_mess_per_cycle", KindInt, "1"),

		col("half_time", KindInt, "300"),
		col("simulator_step", KindInt, "100"),
		col("send_step", KindInt, "150"),
		col("recv_step", KindInt, "10"),
		col("sense_body_step", KindInt, "100"),

		col("say_msg_size", KindInt, "10"),
		col("hear_max", KindInt, "1"),
		col("hear_inc", KindInt, "1"),
		col("hear_decay", KindInt, "1"),

		col("catch_ban_cycle", KindInt, "5"),

		col("slow_down_factor", KindInt, "1"),

		col("use_offside", KindBool, "1"),
		col("forbid_kick_off_offside", KindBool, "1"),
		col("offside_kick_margin", KindFloat, "9.15"),

		col("audio_cut_dist", KindFloat, "50"),

		col("quantize_step", KindFloat, "0.1"),
		col("quantize_step_l", KindFloat, "0.01"),

		col("coach", KindBool, "0"),
		col("coach_w_referee", KindBool, "0"),
		col("old_coach_hear", KindBool, "0"),

		col("slowness_on_top_for_left_team", KindFloat, "1"),
		col("slowness_on_top_for_right_team", KindFloat, "1"),

		col("start_goal_l", KindInt, "0"),
		col("start_goal_r", KindInt, "0"),

		col("fullstate_l", KindBool, "0"),
		col("fullstate_r", KindBool, "0"),

		col("drop_ball_time", KindInt, "100"),

		col("synch_mode", KindBool, "0"),
		col("synch_offset", KindInt, "60"),
		col("synch_micro_sleep", KindInt, "1"),

		col("point_to_ban", KindInt, "5"),
		col("point_to_duration", KindInt, "20"),

		col("port", KindInt, "6000"),
		col("coach_port", KindInt, "6001"),
		col("olcoach_port", KindInt, "6002"),

		col("verbose", KindBool, "0"),

		col("send_vi_step", KindInt, "100"),

		col("landmark_file", KindString, "~/.rcssserver-landmark.xml"),

		col("send_comms", KindBool, "0"),

		col("text_logging", KindBool, "1"),
		col("game_logging", KindBool, "1"),
		col("game_log_version", KindInt, "5"),
		col("text_log_dir", KindString, "./"),
		col("game_log_dir", KindString, "./"),
		col("text_log_fixed_name", KindString, "rcssserver"),
		col("game_log_fixed_name", KindString, "rcssserver"),
		col("text_log_fixed", KindBool, "0"),
		col("game_log_fixed", KindBool, "0"),
		col("text_log_dated", KindBool, "1"),
		col("game_log_dated", KindBool, "1"),
		col("log_date_format", KindString, "%Y%m%d%H%M%S-"),
		col("log_times", KindBool, "0"),
		col("record_messages", KindBool, "0"),
		col("text_log_compression", KindInt, "0"),
		col("game_log_compression", KindInt, "0"),
		col("profile", KindBool, "0"),

		col("tackle_dist", KindFloat, "2"),
		col("tackle_back_dist", KindFloat, "0"),
		col("tackle_width", KindFloat, "1.25"),
		col("tackle_exponent", KindFloat, "6"),
		col("tackle_cycles", KindInt, "10"),
		col("tackle_power_rate", KindFloat, "0.027"),

		col("freeform_wait_period", KindInt, "600"),
		col("freeform_send_period", KindInt, "20"),

		col("free_kick_faults", KindBool, "1"),
		col("back_passes", KindBool, "1"),

		col("proper_goal_kicks", KindBool, "0"),
		col("stopped_ball_vel", KindFloat, "0.01"),
		col("max_goal_kicks", KindInt, "3"),

		col("clang_del_win", KindInt, "1"),
		col("clang_rule_win", KindInt, "1"),

		col("auto_mode", KindBool, "0"),
		col("kick_off_wait", KindInt, "100"),
		col("connect_wait", KindInt, "300"),
		col("game_over_wait", KindInt, "100"),
		col("team_l_start", KindString, ""),
		col("team_r_start", KindString, ""),

		col("keepaway", KindBool, "0"),
		col("keepaway_length", KindFloat, "20"),
		col("keepaway_width", KindFloat, "20"),

		col("keepaway_logging", KindBool, "1"),
		col("keepaway_log_dir", KindString, "./"),
		col("keepaway_log_fixed_name", KindString, "rcssserver"),
		col("keepaway_log_fixed", KindBool, "0"),
		col("keepaway_log_dated", KindBool, "1"),

		col("keepaway_start", KindInt, "-1"),

		col("nr_normal_halfs", KindInt, "2"),
		col("nr_extra_halfs", KindInt, "2"),
		col("penalty_shoot_outs", KindBool, "1"),

		col("pen_before_setup_wait", KindInt, "10"),
		col("pen_setup_wait", KindInt, "70"),
		col("pen_ready_wait", KindInt, "10"),
		col("pen_taken_wait", KindInt, "150"),
		col("pen_nr_kicks", KindInt, "5"),
		col("pen_max_extra_kicks", KindInt, "5"),
		col("pen_dist_x", KindFloat, "42.5"),
		col("pen_random_winner", KindBool, "0"),
		col("pen_max_goalie_dist_x", KindFloat, "14"),
		col("pen_allow_mult_kicks", KindBool, "1"),
		col("pen_coach_moves_players", KindBool, "1"),

		col("ball_stuck_area", KindFloat, "3"),
		col("coach_msg_file", KindString, ""),

		// 12
		col("max_tackle_power", KindFloat, "100"),
		col("max_back_tackle_power", KindFloat, "0"),
		col("player_speed_max_min", KindFloat, "0.75"),
		col("extra_stamina", KindFloat, "50"),
		col("synch_see_offset", KindInt, "0"),
		col("max_monitors", KindInt, "-1"),

		// 12.1.3
		col("extra_half_time", KindInt, "100"),

		// 13.0.0
		col("stamina_capacity", KindFloat, "130600"),
		col("max_dash_angle", KindFloat, "180"),
		col("min_dash_angle", KindFloat, "-180"),
		col("dash_angle_step", KindFloat, "1"),
		col("side_dash_rate", KindFloat, "0.4"),
		col("back_dash_rate", KindFloat, "0.7"),
		col("max_dash_power", KindFloat, "100"),
		col("min_dash_power", KindFloat, "-100"),

		// 14.0.0
		col("tackle_rand_factor", KindFloat, "2"),
		col("foul_detect_probability", KindFloat, "0.5"),
		col("foul_exponent", KindFloat, "10"),
		col("foul_cycles", KindInt, "5"),
		col("golden_goal", KindBool, "0"),

		// 15.0.0
		col("red_card_probability", KindFloat, "0"),

		// 16.0.0
		col("illegal_defense_duration", KindInt, "20"),
		col("illegal_defense_number", KindInt, "0"),
		col("illegal_defense_dist_x", KindFloat, "16.5"),
		col("illegal_defense_width", KindFloat, "40.32"),
		col("fixed_teamname_l", KindString, ""),
		col("fixed_teamname_r", KindString, ""),
	},
}

// ParseServer decodes a server_param message. Any value that cannot be
// parsed fails the whole message.
func ParseServer(msg string) (Set, error) {
	return parseStrict(ServerSchema, msg)
}
