package services

import (
	"context"
	"log"
	"time"

	"biblioteca-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the daily overdue-loan report (08:30).
// It only reads and logs; loan state is never mutated outside the
// request path.
type CronService struct {
	cron     *cron.Cron
	loanRepo repositories.LoanRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	s := &CronService{
		cron:     cron.New(),
		loanRepo: repositories.NewLoanRepository(db),
	}

	if _, err := s.cron.AddFunc("30 8 * * *", s.reportOverdueLoans); err != nil {
		log.Printf("❌ Failed to schedule overdue report: %v", err)
	}

	return s
}

// Start begins the cron schedule
func (s *CronService) Start() {
	s.cron.Start()
	log.Println("⏰ Overdue report scheduled daily at 08:30")
}

// Stop stops the cron schedule
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Overdue report stopped")
}

func (s *CronService) reportOverdueLoans() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.loanRepo.CountOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Overdue report query error: %v", err)
		return
	}

	if count > 0 {
		log.Printf("📕 %d loans are overdue", count)
	} else {
		log.Println("📗 No overdue loans")
	}
}
