package scheduler

import (
	"log"
	"sync"
	"time"
)

// Runner menggantikan pola setInterval/setTimeout: semua job periodik
// terdaftar di satu tempat dan bisa di-start/stop sebagai satu unit.
// Now bisa di-inject supaya test tidak perlu menunggu wall-clock.
type Runner struct {
	Now func() time.Time

	mu      sync.Mutex
	jobs    []*job
	quit    chan struct{}
	wg      sync.WaitGroup
	started bool
}

type job struct {
	name      string
	immediate bool
	next      func(time.Time) time.Time
	run       func()
}

func NewRunner() *Runner {
	return &Runner{Now: time.Now}
}

// Every menjalankan fn sekali saat Start lalu setiap interval.
func (r *Runner) Every(name string, interval time.Duration, fn func()) {
	r.add(&job{
		name:      name,
		immediate: true,
		next:      func(now time.Time) time.Time { return now.Add(interval) },
		run:       fn,
	})
}

// DailyAt menjalankan fn setiap hari pada jam:menit lokal.
func (r *Runner) DailyAt(name string, hour, min int, fn func()) {
	r.add(&job{
		name: name,
		next: func(now time.Time) time.Time { return NextDaily(now, hour, min) },
		run:  fn,
	})
}

// WeeklyAt menjalankan fn tiap minggu pada hari + jam:menit lokal.
func (r *Runner) WeeklyAt(name string, weekday time.Weekday, hour, min int, fn func()) {
	r.add(&job{
		name: name,
		next: func(now time.Time) time.Time { return NextWeekly(now, weekday, hour, min) },
		run:  fn,
	})
}

func (r *Runner) add(j *job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, j)
}

func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	r.quit = make(chan struct{})

	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(j)
	}
	log.Printf("[CRON] %d job periodik dimulai", len(r.jobs))
}

func (r *Runner) loop(j *job) {
	defer r.wg.Done()

	if j.immediate {
		r.safeRun(j)
	}
	for {
		wait := j.next(r.Now()).Sub(r.Now())
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			r.safeRun(j)
		case <-r.quit:
			timer.Stop()
			return
		}
	}
}

// Panic dari satu job tidak boleh mematikan job lain.
func (r *Runner) safeRun(j *job) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[CRON ERROR] job %s panic: %v", j.name, rec)
		}
	}()
	j.run()
}

// Stop menghentikan semua timer dan menunggu loop selesai. Job yang
// sedang berjalan dibiarkan selesai; tidak ada sweep parsial baru.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	close(r.quit)
	r.mu.Unlock()

	r.wg.Wait()
	log.Println("⏹️ Semua job periodik berhenti")
}

// NextDaily target harian berikutnya setelah now.
func NextDaily(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextWeekly target mingguan berikutnya setelah now.
func NextWeekly(now time.Time, weekday time.Weekday, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}
