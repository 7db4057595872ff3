// Package scheduler runs periodic maintenance jobs on top of gocron.
//
// The service uses it to take over stream entries abandoned by crashed
// instances and to sweep idle rate limit buckets:
//
//	s, err := scheduler.New(scheduler.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	_ = s.Add(scheduler.Job{Name: "reclaim", Every: 30 * time.Second, Run: reclaim})
//	go s.Run(ctx)
//
// Job errors and panics are logged and never stop the scheduler.
package scheduler
