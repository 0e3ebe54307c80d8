package i18n

import "github.com/banshee-data/formcheck/internal/exercise"

var messagesEN = map[exercise.Feedback]string{
	exercise.FeedbackLowerBodyNotVisible: "Make sure your lower body is in view of the camera",
	exercise.FeedbackUpperBodyNotVisible: "Make sure your upper body is in view of the camera",

	exercise.FeedbackSquatRise:    "Good depth! Stand back up to finish the rep",
	exercise.FeedbackSquatDescend: "Standing tall, now squat down",

	exercise.FeedbackPushupPush:  "Down, now push back up",
	exercise.FeedbackPushupLower: "Up, now lower yourself",

	exercise.FeedbackPlankElbowsUnderShoulders: "Keep your elbows under your shoulders",
	exercise.FeedbackPlankHoldSteady:           "Hold the position steady",
	exercise.FeedbackPlankHolding:              "Good form, held for %.1f seconds",
	exercise.FeedbackPlankHoldingWell:          "Well done! Held for %.1f seconds",
	exercise.FeedbackPlankHoldingGreat:         "Excellent! Held for %.1f seconds",

	exercise.FeedbackJumpingJackClose:    "Arms open, now bring them back together",
	exercise.FeedbackJumpingJackHoldOpen: "Keep your arms open",
	exercise.FeedbackJumpingJackRepDone:  "Nice! One jumping jack done",
	exercise.FeedbackJumpingJackReady:    "Get ready for the next one",
	exercise.FeedbackJumpingJackRaise:    "Raise your arms above your shoulders",
	exercise.FeedbackJumpingJackJump:     "Jump and spread your arms",
}

var messagesZH = map[exercise.Feedback]string{
	exercise.FeedbackLowerBodyNotVisible: "请确保下半身在摄像头范围内",
	exercise.FeedbackUpperBodyNotVisible: "请确保上半身在摄像头范围内",

	exercise.FeedbackSquatRise:    "很好！下蹲姿势正确，请站起来完成动作",
	exercise.FeedbackSquatDescend: "站立姿势正确，请尝试下蹲",

	exercise.FeedbackPushupPush:  "已下降，请向上推起",
	exercise.FeedbackPushupLower: "已上升，请下降",

	exercise.FeedbackPlankElbowsUnderShoulders: "肘部应在肩部下方",
	exercise.FeedbackPlankHoldSteady:           "保持姿势稳定",
	exercise.FeedbackPlankHolding:              "姿势正确，已坚持 %.1f 秒",
	exercise.FeedbackPlankHoldingWell:          "做得好！已坚持 %.1f 秒",
	exercise.FeedbackPlankHoldingGreat:         "太棒了！已坚持 %.1f 秒",

	exercise.FeedbackJumpingJackClose:    "很好！手臂张开，准备合拢",
	exercise.FeedbackJumpingJackHoldOpen: "保持手臂张开姿势",
	exercise.FeedbackJumpingJackRepDone:  "很好！完成一次开合跳",
	exercise.FeedbackJumpingJackReady:    "准备下一次开合跳",
	exercise.FeedbackJumpingJackRaise:    "请将手臂抬高到肩部以上",
	exercise.FeedbackJumpingJackJump:     "请跳起并张开手臂",
}
