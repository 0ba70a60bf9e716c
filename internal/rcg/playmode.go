package rcg

// PlayMode is the referee state of the match.
type PlayMode uint8

const (
	PlayModeNull PlayMode = iota
	PlayModeBeforeKickOff
	PlayModeTimeOver
	PlayModePlayOn
	PlayModeKickOffLeft
	PlayModeKickOffRight
	PlayModeKickInLeft
	PlayModeKickInRight
	PlayModeFreeKickLeft
	PlayModeFreeKickRight
	PlayModeCornerKickLeft
	PlayModeCornerKickRight
	PlayModeGoalKickLeft
	PlayModeGoalKickRight
	PlayModeAfterGoalLeft
	PlayModeAfterGoalRight
	PlayModeDropBall
	PlayModeOffSideLeft
	PlayModeOffSideRight
	PlayModePenaltyKickLeft
	PlayModePenaltyKickRight
	PlayModeFirstHalfOver
	PlayModePause
	PlayModeHuman
	PlayModeFoulChargeLeft
	PlayModeFoulChargeRight
	PlayModeFoulPushLeft
	PlayModeFoulPushRight
	PlayModeFoulMultipleAttackLeft
	PlayModeFoulMultipleAttackRight
	PlayModeFoulBallOutLeft
	PlayModeFoulBallOutRight
	PlayModeBackPassLeft
	PlayModeBackPassRight
	PlayModeFreeKickFaultLeft
	PlayModeFreeKickFaultRight
	PlayModeCatchFaultLeft
	PlayModeCatchFaultRight
	PlayModeIndirectFreeKickLeft
	PlayModeIndirectFreeKickRight
	PlayModePenaltySetupLeft
	PlayModePenaltySetupRight
	PlayModePenaltyReadyLeft
	PlayModePenaltyReadyRight
	PlayModePenaltyTakenLeft
	PlayModePenaltyTakenRight
	PlayModePenaltyMissLeft
	PlayModePenaltyMissRight
	PlayModePenaltyScoreLeft
	PlayModePenaltyScoreRight
	PlayModeIllegalDefenseLeft
	PlayModeIllegalDefenseRight
	PlayModePenaltyOnfieldLeft
	PlayModePenaltyOnfieldRight
	PlayModePenaltyFoulLeft
	PlayModePenaltyFoulRight
	PlayModeGoalieCatchLeft
	PlayModeGoalieCatchRight
	PlayModeTimeUpWithoutATeam
	PlayModeTimeUp
	PlayModeTimeExtended
)

var playModeNames = [...]string{
	"",
	"before_kick_off",
	"time_over",
	"play_on",
	"kick_off_l",
	"kick_off_r",
	"kick_in_l",
	"kick_in_r",
	"free_kick_l",
	"free_kick_r",
	"corner_kick_l",
	"corner_kick_r",
	"goal_kick_l",
	"goal_kick_r",
	"goal_l",
	"goal_r",
	"drop_ball",
	"offside_l",
	"offside_r",
	"penalty_kick_l",
	"penalty_kick_r",
	"first_half_over",
	"pause",
	"human_judge",
	"foul_charge_l",
	"foul_charge_r",
	"foul_push_l",
	"foul_push_r",
	"foul_multiple_attack_l",
	"foul_multiple_attack_r",
	"foul_ballout_l",
	"foul_ballout_r",
	"back_pass_l",
	"back_pass_r",
	"free_kick_fault_l",
	"free_kick_fault_r",
	"catch_fault_l",
	"catch_fault_r",
	"indirect_free_kick_l",
	"indirect_free_kick_r",
	"penalty_setup_l",
	"penalty_setup_r",
	"penalty_ready_l",
	"penalty_ready_r",
	"penalty_taken_l",
	"penalty_taken_r",
	"penalty_miss_l",
	"penalty_miss_r",
	"penalty_score_l",
	"penalty_score_r",
	"illegal_defense_l",
	"illegal_defense_r",
	"penalty_onfield_l",
	"penalty_onfield_r",
	"penalty_foul_l",
	"penalty_foul_r",
	"goalie_catch_ball_l",
	"goalie_catch_ball_r",
	"time_up_without_a_team",
	"time_up",
	"time_extended",
}

// String returns the server name of the play mode. Values outside the table
// map to the null entry.
func (pm PlayMode) String() string {
	if int(pm) >= len(playModeNames) {
		return playModeNames[PlayModeNull]
	}
	return playModeNames[pm]
}

// ParsePlayMode resolves a server play mode name. Unknown names yield
// PlayModeNull and false.
func ParsePlayMode(name string) (PlayMode, bool) {
	if name == "" {
		return PlayModeNull, false
	}
	for i, candidate := range playModeNames {
		if candidate == name {
			return PlayMode(i), true
		}
	}
	return PlayModeNull, false
}
