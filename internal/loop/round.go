package loop

import (
	"go.uber.org/zap"

	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/draw"
	"github.com/tomz197/duel/internal/object"
)

// roundEnd records winner's hit and starts the round-end countdown. It only
// acts while a round is being played, so later hits in the same round,
// including ones in the same tick, are ignored.
func (s *Simulation) roundEnd(winner object.Side) {
	if s.state != StatePlaying {
		return
	}
	s.state = StateRoundEnd
	s.roundWinner = winner
	s.roundTimer = s.cfg.RoundEndTicks()
	s.audio.Play(audio.CueExplosion)

	loser := s.character(winner.Opposite())
	object.SpawnBurst(loser.X, loser.Y, explosionParticles, draw.Red, s.rand, s)
	s.shake = roundEndShake

	s.log.Debug("round won",
		zap.Int("round", s.round),
		zap.Stringer("winner", winner),
		zap.Int("delay_ticks", s.roundTimer))
}

// finishRound runs when the round-end countdown expires: the winner scores,
// then the match either ends or a fresh round begins.
func (s *Simulation) finishRound() {
	if s.state != StateRoundEnd {
		return
	}
	winner := s.roundWinner
	s.scores.add(winner)

	if s.scores.Of(winner) >= s.cfg.Match.WinRounds {
		s.state = StateResult
		s.roundTimer = 0
		s.log.Info("match over",
			zap.Stringer("winner", winner),
			zap.Int("player", s.scores.Player),
			zap.Int("opponent", s.scores.Opponent),
			zap.Int("rounds", s.round))
		return
	}
	s.initRound()
}
