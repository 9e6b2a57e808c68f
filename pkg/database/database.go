package database

import (
	"encoding/json"
	"fmt"
	"log"

	"lumo_backend/internal/config"
	"lumo_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Skill{},
		&model.Internship{},
		&model.RecommendedProject{},
		&model.QuizQuestion{},
		&model.CodingQuestion{},
		&model.InterviewQuestion{},
		&model.ChatTurn{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults inserts sample data the first time the service starts
// against an empty database. Every block is guarded by a count so
// restarts never duplicate records.
func seedDefaults(db *gorm.DB) {
	var skillCount int64
	db.Model(&model.Skill{}).Count(&skillCount)
	if skillCount == 0 {
		names := []string{
			"Python", "JavaScript", "React", "Django", "Node.js", "HTML", "CSS",
			"Java", "C++", "SQL", "MongoDB", "PostgreSQL", "Git", "Docker",
			"AWS", "Machine Learning", "Data Analysis", "UI/UX Design",
			"Project Management", "Communication", "Problem Solving",
		}
		for _, name := range names {
			db.Create(&model.Skill{Name: name})
		}
	}

	var internCount int64
	db.Model(&model.Internship{}).Count(&internCount)
	if internCount == 0 {
		samples := []struct {
			intern model.Internship
			skills []string
		}{
			{
				intern: model.Internship{
					Title:       "Software Engineering Intern",
					Company:     "TechCorp Inc.",
					Description: "Join our engineering team to work on cutting-edge web applications. You'll collaborate with senior developers, participate in code reviews, and contribute to our main product platform.",
					Location:    "San Francisco, CA",
					Stipend:     5000.00,
					Duration:    "3 Months",
				},
				skills: []string{"Python", "Django", "JavaScript", "React", "SQL"},
			},
			{
				intern: model.Internship{
					Title:       "Data Science Intern",
					Company:     "DataFlow Analytics",
					Description: "Work with our data science team to analyze large datasets and build machine learning models. Perfect opportunity to apply statistical knowledge in real-world scenarios.",
					Location:    "New York, NY",
					Stipend:     4500.00,
					Duration:    "4 Months",
				},
				skills: []string{"Python", "Machine Learning", "Data Analysis", "SQL"},
			},
			{
				intern: model.Internship{
					Title:       "Frontend Developer Intern",
					Company:     "DesignStudio Pro",
					Description: "Create beautiful and responsive user interfaces for our client projects. You'll work closely with designers and backend developers to deliver exceptional user experiences.",
					Location:    "Austin, TX",
					Stipend:     4000.00,
					Duration:    "3 Months",
				},
				skills: []string{"JavaScript", "React", "HTML", "CSS", "UI/UX Design"},
			},
			{
				intern: model.Internship{
					Title:       "Backend Developer Intern",
					Company:     "CloudTech Solutions",
					Description: "Develop and maintain server-side applications and APIs. You'll learn about scalable architecture, database design, and cloud deployment.",
					Location:    "Seattle, WA",
					Stipend:     4800.00,
					Duration:    "6 Months",
				},
				skills: []string{"Node.js", "MongoDB", "AWS", "Docker", "Git"},
			},
			{
				intern: model.Internship{
					Title:       "Mobile App Development Intern",
					Company:     "AppVentures",
					Description: "Build cross-platform mobile applications using modern frameworks. Great opportunity to learn mobile development best practices.",
					Location:    "Los Angeles, CA",
					Stipend:     3800.00,
					Duration:    "4 Months",
				},
				skills: []string{"JavaScript", "React", "HTML", "CSS"},
			},
			{
				intern: model.Internship{
					Title:       "DevOps Engineering Intern",
					Company:     "InfraTech Systems",
					Description: "Learn about CI/CD pipelines, containerization, and cloud infrastructure. You'll help automate deployment processes and monitor system performance.",
					Location:    "Remote",
					Stipend:     4200.00,
					Duration:    "5 Months",
				},
				skills: []string{"Docker", "AWS", "Git", "Python"},
			},
		}

		for i := range samples {
			var skills []model.Skill
			db.Where("name IN ?", samples[i].skills).Find(&skills)
			samples[i].intern.RequiredSkills = skills
			db.Create(&samples[i].intern)
		}

		seedSampleQuestions(db, samples[0].intern.ID, samples[1].intern.ID)
	}

	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&model.User{
				Name:     "Admin User",
				Email:    "admin@lumo.com",
				Password: string(hashed),
				Role:     model.Admin,
			})
			log.Println("Created default admin user (admin@lumo.com)")
		}
	}
}

func seedSampleQuestions(db *gorm.DB, sweID, dsID uint) {
	quizOptions, _ := json.Marshal(map[string]string{
		"A": "O(n)", "B": "O(log n)", "C": "O(n^2)", "D": "O(1)",
	})
	db.Create(&model.QuizQuestion{
		InternshipID:     sweID,
		QuestionText:     "What is the time complexity of binary search?",
		Options:          quizOptions,
		CorrectAnswerKey: "B",
	})

	pandasOptions, _ := json.Marshal(map[string]string{
		"A": "NumPy", "B": "Pandas", "C": "Matplotlib", "D": "All of the above",
	})
	db.Create(&model.QuizQuestion{
		InternshipID:     dsID,
		QuestionText:     "Which Python library is commonly used for data manipulation?",
		Options:          pandasOptions,
		CorrectAnswerKey: "D",
	})

	twoSumCases, _ := json.Marshal(map[string]string{
		"input":       "[2,7,11,15], target = 9",
		"output":      "[0,1]",
		"explanation": "Because nums[0] + nums[1] == 9, we return [0, 1].",
	})
	db.Create(&model.CodingQuestion{
		InternshipID:     sweID,
		Title:            "Two Sum",
		ProblemStatement: "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.",
		TestCases:        twoSumCases,
	})

	db.Create(&model.InterviewQuestion{
		InternshipID:    sweID,
		QuestionText:    "Tell me about a challenging project you worked on.",
		SuggestedAnswer: "Structure your answer using the STAR method (Situation, Task, Action, Result). Describe the project context, your specific role, the actions you took, and the positive outcome.",
	})

	db.Create(&model.InterviewQuestion{
		InternshipID:    dsID,
		QuestionText:    "How would you handle missing data in a dataset?",
		SuggestedAnswer: "Discuss various approaches: deletion (listwise/pairwise), imputation (mean/median/mode), or advanced techniques like multiple imputation. Mention the importance of understanding why data is missing.",
	})

	db.Create(&model.RecommendedProject{
		InternshipID: sweID,
		Title:        "Personal Portfolio Website",
		Description:  "Build a responsive portfolio website showcasing your projects, skills, and experience. Include contact forms and interactive elements.",
	})
	db.Create(&model.RecommendedProject{
		InternshipID: dsID,
		Title:        "Sales Data Analysis Dashboard",
		Description:  "Create an interactive dashboard that analyzes sales data, identifies trends, and provides actionable insights using Python and visualization libraries.",
	})
}
