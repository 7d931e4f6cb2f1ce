package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/rescue/model"
)

func NewSimServer(sc Scenario) *SimServer {
	return &SimServer{
		Scenario: sc,
		Upgrader: &websocket.Upgrader{},
	}
}

// newRun builds a fresh model from the configured scenario. Every run gets
// its own model and rng; nothing is shared between runs.
func (s *SimServer) newRun(seed int64) (*Run, error) {
	cfg, err := s.Scenario.ToConfig(seed)
	if err != nil {
		return nil, err
	}
	m, err := model.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Run{
		Id:    uuid.NewString(),
		State: RUN_NEW,
		Seed:  seed,
		Model: m,
	}, nil
}

func seedFromRequest(r *http.Request) int64 {
	if raw := r.URL.Query().Get("seed"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return seed
		}
		log.Warnf("ignoring unparseable seed %q", raw)
	}
	return time.Now().UnixNano()
}

// Play steps the run to a terminal state or the step cap, recording a
// snapshot after every turn.
func (run *Run) Play() {
	run.State = RUN_PLAY
	for step := 0; step < MAX_STEPS; step++ {
		terminal := run.Model.AdvanceOneTurn()
		run.Steps = append(run.Steps, StepRecord{
			Step:      step,
			GridState: run.Model.Snapshot(),
		})
		if terminal {
			break
		}
	}
	run.State = RUN_OVER
}

func (s *SimServer) HandleRunSimulation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed := seedFromRequest(r)
		run, err := s.newRun(seed)
		if err != nil {
			log.Warnf("HandleRunSimulation bad scenario: %v", err)
			http.Error(w, err.Error(), HTTP_BAD_REQUEST)
			return
		}
		log.Printf("HandleRunSimulation run:%s seed:%d", run.Id, seed)
		run.Play()
		stats := run.Model.FinalStats()
		log.Printf("HandleRunSimulation run:%s %s after %d steps [%s]",
			run.Id, stats.Result, stats.TotalSteps, run.State.Name())

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(RunResponse{
			RunId:      run.Id,
			Seed:       run.Seed,
			FinalStats: stats,
			StepsData:  run.Steps,
		})
		if err != nil {
			log.Warnf("HandleRunSimulation cant encode %v", err)
		}
	}
}

func (s *SimServer) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}
}

// HandleWatch streams a run live: one JSON frame per turn, then the final
// stats, then a normal close. The read loop only watches for the client
// going away.
func (s *SimServer) HandleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seed := seedFromRequest(r)
		run, err := s.newRun(seed)
		if err != nil {
			log.Warnf("HandleWatch bad scenario: %v", err)
			http.Error(w, err.Error(), HTTP_BAD_REQUEST)
			return
		}

		conn, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("HandleWatch websocket upgrade err %v", err)
			return
		}
		defer conn.Close()
		log.Printf("HandleWatch run:%s seed:%d", run.Id, seed)

		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		run.State = RUN_PLAY
		for step := 0; step < MAX_STEPS; step++ {
			select {
			case <-gone:
				log.Printf("HandleWatch run:%s client gone at step %d", run.Id, step)
				run.State = RUN_ERR
				return
			default:
			}
			terminal := run.Model.AdvanceOneTurn()
			snapshot := run.Model.Snapshot()
			if err := conn.WriteJSON(WatchMessage{Step: step, GridState: &snapshot}); err != nil {
				log.Warnf("HandleWatch run:%s write err %v", run.Id, err)
				run.State = RUN_ERR
				return
			}
			if terminal {
				break
			}
		}
		run.State = RUN_OVER

		stats := run.Model.FinalStats()
		if err := conn.WriteJSON(WatchMessage{Step: stats.TotalSteps, FinalStats: &stats}); err != nil {
			log.Warnf("HandleWatch run:%s final write err %v", run.Id, err)
			return
		}
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, stats.Result), deadline)
		log.Printf("HandleWatch run:%s %s after %d steps", run.Id, stats.Result, stats.TotalSteps)
	}
}
