// ABOUTME: Sync policy resolver: server-authoritative load with cache fallback.
// ABOUTME: The cache is for offline continuity only and never wins over remote data.
package sync

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/HPsm01/FIT-AI-11-04/internal/api"
	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
	"github.com/HPsm01/FIT-AI-11-04/internal/session"
)

// Outcome reports which branch of the sync policy a resolution took.
type Outcome int

const (
	// OutcomeRemote: remote had items and replaced the active collection.
	OutcomeRemote Outcome = iota
	// OutcomeCache: remote was empty, a cached snapshot was adopted.
	OutcomeCache
	// OutcomeDefaults: neither remote nor cache had data; fresh empty sets.
	OutcomeDefaults
	// OutcomeKept: remote was empty but the in-memory state already reflects
	// a remote load, so the cache was ignored.
	OutcomeKept
	// OutcomeStale: the response arrived after the session moved to another
	// (date, exercise) key and was discarded.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRemote:
		return "remote"
	case OutcomeCache:
		return "cache"
	case OutcomeDefaults:
		return "defaults"
	case OutcomeKept:
		return "kept"
	case OutcomeStale:
		return "stale"
	}
	return "unknown"
}

// Resolver produces the authoritative set collection for the session's
// current (date, exercise) key. Remote is the single source of truth; the
// local cache only fills in when remote has nothing for the day. Fetch
// failures degrade to the empty-result path instead of propagating: the
// view must never hang on a sync failure.
type Resolver struct {
	fetcher api.WorkoutFetcher
	store   *cache.Store
	sess    *session.Session
	log     *log.Logger
}

// NewResolver wires a resolver over the given fetcher, cache, and session.
func NewResolver(fetcher api.WorkoutFetcher, store *cache.Store, sess *session.Session, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{fetcher: fetcher, store: store, sess: sess, log: logger}
}

// Load performs a full resolution for the session's current key:
//
//  1. Query remote for the day's items.
//  2. Items present: map them to sets, pad to the minimum, replace the
//     active exercise's collection wholesale, write the day through to the
//     cache. Terminal; no merge with prior local edits.
//  3. Zero items (or fetch failure): total reps goes to zero and the cache
//     fallback decides between a cached snapshot and fresh empty sets.
//
// Responses for a key the session has navigated away from are discarded.
func (r *Resolver) Load(ctx context.Context) Outcome {
	key := r.sess.Key()
	reqID := shortID()

	resp := r.fetch(ctx, key, reqID)
	if r.sess.Key() != key {
		r.log.Debug("discarding stale load", "req", reqID, "for", key, "now", r.sess.Key())
		return OutcomeStale
	}

	if resp != nil && len(resp.Items) > 0 {
		sets := models.PadSets(mapItems(resp.Items))
		r.sess.ReplaceCollection(key.Exercise, sets)
		r.sess.SetTotalReps(resp.TotalReps)
		r.writeThrough(key.Date)
		r.log.Debug("replaced from remote", "req", reqID, "key", key, "sets", len(sets), "total_reps", resp.TotalReps)
		return OutcomeRemote
	}

	// Remote has nothing for this day.
	r.sess.SetTotalReps(0)

	cached, found, err := r.store.LoadDayLog(r.sess.UserID(), key.Date)
	if err != nil {
		r.log.Warn("cache read failed", "req", reqID, "key", key, "err", err)
		found = false
	}
	if found {
		if r.sess.HasServerData(key.Exercise) {
			// Remote wins: a successful remote load already populated the
			// collection, the cache must not displace it.
			r.log.Debug("cache ignored, remote data present", "req", reqID, "key", key)
			return OutcomeKept
		}
		r.sess.AdoptDayLog(cached)
		r.log.Debug("adopted cached snapshot", "req", reqID, "key", key)
		return OutcomeCache
	}

	r.sess.ResetDayLog()
	r.log.Debug("no remote or cached data, fresh sets", "req", reqID, "key", key)
	return OutcomeDefaults
}

// RefreshFeedback is the incremental variant: it re-queries remote for the
// active key only and overlays each returned item onto the set at the same
// position. VideoUploaded and WeightLocked are merged monotonically: a local
// optimistic flag set right after an upload must not be clobbered back by a
// remote response that hasn't caught up yet.
func (r *Resolver) RefreshFeedback(ctx context.Context) Outcome {
	key := r.sess.Key()
	reqID := shortID()

	resp := r.fetch(ctx, key, reqID)
	if r.sess.Key() != key {
		r.log.Debug("discarding stale refresh", "req", reqID, "for", key, "now", r.sess.Key())
		return OutcomeStale
	}

	if resp == nil || len(resp.Items) == 0 {
		r.sess.SetTotalReps(0)
		return OutcomeKept
	}

	r.sess.SetTotalReps(resp.TotalReps)

	overlay := mapItems(resp.Items)
	merged := r.sess.Sets(key.Exercise)
	for i := range merged {
		if i >= len(overlay) {
			break
		}
		srv := overlay[i]
		srv.SetNumber = merged[i].SetNumber
		srv.VideoUploaded = srv.VideoUploaded || merged[i].VideoUploaded
		srv.WeightLocked = srv.WeightLocked || merged[i].WeightLocked
		merged[i] = srv
	}
	r.sess.ReplaceCollection(key.Exercise, merged)
	r.writeThrough(key.Date)
	r.log.Debug("feedback refreshed", "req", reqID, "key", key, "items", len(overlay))
	return OutcomeRemote
}

// fetch wraps the remote call with the fail-open policy: any transport or
// decode failure is logged and treated as an empty result.
func (r *Resolver) fetch(ctx context.Context, key session.Key, reqID string) *api.WorkoutsResponse {
	resp, err := r.fetcher.WorkoutsByDate(ctx, r.sess.UserID(), key.Date, string(key.Exercise))
	if err != nil {
		r.log.Warn("workout fetch failed", "req", reqID, "key", key, "err", err)
		return nil
	}
	return resp
}

// writeThrough persists the full day snapshot to the cache. Best-effort:
// failures are logged, never surfaced.
func (r *Resolver) writeThrough(date string) {
	if err := r.store.SaveDayLog(r.sess.UserID(), date, r.sess.DayLog()); err != nil {
		r.log.Warn("cache write failed", "date", date, "err", err)
	}
}

// mapItems converts remote items to sets. A weight value resolved through
// the fallback chain implies the set was uploaded and its weight locked.
func mapItems(items []api.WorkoutItem) []models.ExerciseSet {
	sets := make([]models.ExerciseSet, len(items))
	for i, it := range items {
		weight := extractWeight(it)

		var fb models.Feedback
		switch {
		case it.AIFeedback != nil:
			fb = models.StructuredFeedback(it.AIFeedback)
		case weight != "":
			// Weight on the server but no analysis yet: still in the queue.
			fb = models.PendingFeedback()
		}

		sets[i] = models.ExerciseSet{
			SetNumber:        i + 1,
			Weight:           weight,
			Reps:             it.RepCnt,
			Feedback:         fb,
			AnalysisVideoURL: it.ResolvedVideoURL(),
			WeightLocked:     weight != "",
			VideoUploaded:    weight != "",
		}
	}
	return sets
}

// extractWeight resolves the weight with the priority order the unstable
// upstream schema requires: explicit load field, generic weight field, then
// the weight token embedded in the upload key.
func extractWeight(it api.WorkoutItem) string {
	if it.LoadKG != nil && *it.LoadKG != 0 {
		return formatWeight(*it.LoadKG)
	}
	if it.Weight != nil && *it.Weight != 0 {
		return formatWeight(*it.Weight)
	}
	if w, ok := weightFromUploadKey(it.S3Key); ok {
		return formatWeight(w)
	}
	return ""
}

// weightFromUploadKey parses the third underscore token of the upload key
// filename: fitvideo/{userId}_{name}_{weightKg}_{exerciseId}_{ts}.mp4.
func weightFromUploadKey(s3Key string) (float64, bool) {
	if s3Key == "" {
		return 0, false
	}
	name := s3Key
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return 0, false
	}
	w, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func shortID() string {
	return uuid.NewString()[:8]
}
