package model

import (
	"errors"

	"github.com/JENAI-COMPANY/jenai-sub002/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	RoleMember   = "member"
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

var (
	ErrUserNotFound     = errors.New("USER_NOT_FOUND")
	ErrReferrerNotFound = errors.New("REFERRER_NOT_FOUND")
	ErrReferralCycle    = errors.New("REFERRAL_CYCLE")
	ErrReferrerSet      = errors.New("REFERRER_ALREADY_SET")
)

// User is a node in the referral forest. ReferredBy points to exactly one
// ancestor (0 means none) and is immutable once set. All point balances are
// lifetime totals; MonthlyPoints keeps its historical name even though it is
// never reset, period reporting slices it externally.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:64"`
	Password     string `json:"-" gorm:"size:128"`
	Role         string `json:"role" gorm:"size:16;default:member"`
	ReferralCode string `json:"referral_code" gorm:"uniqueIndex;size:16"`
	ReferredBy   int    `json:"referred_by" gorm:"index"`
	// rank is a reserved word on MySQL 8, hence the explicit column name.
	Rank                   string  `json:"rank" gorm:"column:user_rank;size:32;default:agent"`
	Points                 float64 `json:"points"`
	MonthlyPoints          float64 `json:"monthly_points"`
	Generation1Points      float64 `json:"generation1_points" gorm:"column:generation1_points"`
	Generation2Points      float64 `json:"generation2_points" gorm:"column:generation2_points"`
	Generation3Points      float64 `json:"generation3_points" gorm:"column:generation3_points"`
	Generation4Points      float64 `json:"generation4_points" gorm:"column:generation4_points"`
	Generation5Points      float64 `json:"generation5_points" gorm:"column:generation5_points"`
	LeadershipPoints       float64 `json:"leadership_points"`
	TotalCommission        int64   `json:"total_commission"`
	AvailableCommission    int64   `json:"available_commission"`
	FirstOrderBonusClaimed bool    `json:"first_order_bonus_claimed"`
	CreatedAt              int64   `json:"created_at" gorm:"autoCreateTime:false"`
}

func (user *User) IsMember() bool {
	return user.Role == RoleMember
}

// AccumulatedPoints is the rank-progression metric: personal points plus
// every generation and leadership credit received.
func (user *User) AccumulatedPoints() float64 {
	return user.Points +
		user.Generation1Points + user.Generation2Points + user.Generation3Points +
		user.Generation4Points + user.Generation5Points +
		user.LeadershipPoints
}

func (user *User) generationPoints(generation int) float64 {
	switch generation {
	case 1:
		return user.Generation1Points
	case 2:
		return user.Generation2Points
	case 3:
		return user.Generation3Points
	case 4:
		return user.Generation4Points
	case 5:
		return user.Generation5Points
	}
	return 0
}

// generationColumn maps a 1-based generation to its balance column.
func generationColumn(generation int) string {
	switch generation {
	case 1:
		return "generation1_points"
	case 2:
		return "generation2_points"
	case 3:
		return "generation3_points"
	case 4:
		return "generation4_points"
	case 5:
		return "generation5_points"
	}
	return ""
}

func GetUserById(id int) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	var user User
	err := DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUsername(username string) (*User, error) {
	var user User
	err := DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// getUserForUpdateTx loads a user row with a row lock so concurrent
// settlements over overlapping referral chains serialize per ancestor.
func getUserForUpdateTx(tx *gorm.DB, id int) (*User, error) {
	if !usingSQLite {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user User
	err := tx.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user with a fresh referral code, retrying on code
// collision.
func CreateUser(user *User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = common.GetTimestamp()
	}
	if user.Rank == "" {
		user.Rank = string(RankAgent)
	}
	for attempt := 0; attempt < 3; attempt++ {
		user.ReferralCode = common.GenerateReferralCode()
		err := DB.Create(user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return errors.New("failed to generate unique referral code")
}

// AssignReferrer links userId under the member owning referralCode. The
// referral pointer is write-once, and the ancestor chain of the prospective
// referrer is checked so the assignment cannot close a cycle. The check is
// bounded by the same generation cap the distribution walk uses; deeper
// chains cannot route commission back to the user anyway.
func AssignReferrer(userId int, referralCode string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		user, err := getUserForUpdateTx(tx, userId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.ReferredBy != 0 {
			return ErrReferrerSet
		}

		var referrer User
		err = tx.Where("referral_code = ?", referralCode).First(&referrer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferrerNotFound
		}
		if err != nil {
			return err
		}
		if !referrer.IsMember() {
			return ErrReferrerNotFound
		}
		if referrer.Id == user.Id {
			return ErrReferralCycle
		}

		ancestorId := referrer.ReferredBy
		for level := 0; level < maxGenerations && ancestorId != 0; level++ {
			if ancestorId == user.Id {
				return ErrReferralCycle
			}
			var ancestor User
			err = tx.Select("id", "referred_by").Where("id = ?", ancestorId).First(&ancestor).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			if err != nil {
				return err
			}
			ancestorId = ancestor.ReferredBy
		}

		return tx.Model(&User{}).Where("id = ?", user.Id).Update("referred_by", referrer.Id).Error
	})
}
