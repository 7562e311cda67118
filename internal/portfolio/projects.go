// Package portfolio serves the data science project summaries shown next to
// the photography gallery.
package portfolio

import "errors"

// ErrProjectNotFound is returned for an unknown slug.
var ErrProjectNotFound = errors.New("project not found")

// Project is a data science project summary. Overview is markdown.
//
// swagger:model Project
type Project struct {
	ID              int      `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Overview        string   `json:"overview"`
	OverviewHTML    string   `json:"overviewHtml,omitempty"`
	Technologies    []string `json:"technologies"`
	Category        string   `json:"category"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	PresentationURL string   `json:"presentationUrl,omitempty"`
	Images          []string `json:"images"`
}

var projects = []Project{
	{
		ID:              1,
		Slug:            "stock-market-sentiment",
		Title:           "Stock Market News Sentiment Analysis",
		Description:     "Advanced NLP system leveraging LLMs, Transformers, and Prompt Engineering to extract market sentiment from financial news articles.",
		Overview:        "Built an AI-driven system leveraging Large Language Models (LLMs), Transformers architecture, and Prompt Engineering to extract and summarize market sentiment from financial news articles. The NLP system processes news content through advanced preprocessing pipelines, utilizing state-of-the-art Transformers for sentiment classification and custom Prompt Engineering strategies to optimize LLM performance for financial context understanding.",
		Technologies:    []string{"NLP", "LLMs", "Transformers", "Prompt Engineering"},
		Category:        "nlp",
		GithubURL:       "https://github.com/ozayn/AIML-projects/tree/main/Stock%20Market%20News%20Sentiment%20Analysis%20%26%20Summarization",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/Stock%20Market%20News%20Sentiment%20Analysis%20%26%20Summarization/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Stock%20Market%20News%20Sentiment%20Analysis%20%26%20Summarization/images/label_distribution.png",
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Stock%20Market%20News%20Sentiment%20Analysis%20%26%20Summarization/images/histplot_boxplot_News%20Length_vs_Label.png",
		},
	},
	{
		ID:              2,
		Slug:            "plant-seedling-classification",
		Title:           "Plant Seedling Classification",
		Description:     "Advanced Computer Vision system using TensorFlow and Transfer Learning to distinguish plant seedlings and weeds for precision agriculture.",
		Overview:        "Built an advanced Computer Vision image classifier leveraging TensorFlow deep learning framework and Transfer Learning techniques to distinguish plant seedlings and weeds for agricultural applications. This precision agriculture system uses state-of-the-art Computer Vision algorithms and TensorFlow's neural network capabilities with Transfer Learning from pre-trained models to help farmers identify and manage crop growth through automated plant species classification.",
		Technologies:    []string{"Computer Vision", "TensorFlow", "Transfer Learning"},
		Category:        "computer-vision",
		GithubURL:       "https://github.com/ozayn/AIML-projects/blob/main/Plant%20Seedling%20Classification/code/notebook.ipynb",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/Plant%20Seedling%20Classification/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Plant%20Seedling%20Classification/images/prediction_sample_correct_wrong.png",
		},
	},
	{
		ID:              3,
		Slug:            "bank-customer-churn-prediction",
		Title:           "Bank Customer Churn Prediction",
		Description:     "Deep Learning with Neural Networks, TensorFlow, and Keras for advanced customer behavior analysis and churn prediction.",
		Overview:        "Developed an advanced artificial Neural Network from scratch using TensorFlow and Keras to identify high-risk churn customers through sophisticated Deep Learning techniques. This predictive modeling project leverages Neural Networks and TensorFlow's deep learning capabilities to analyze customer behavior patterns and demographic data, predicting which customers are most likely to leave the bank. The model employs Deep Learning algorithms and Neural Network architectures to enable proactive customer retention strategies by identifying at-risk customers before they churn.",
		Technologies:    []string{"Neural Networks", "TensorFlow", "Keras", "Deep Learning"},
		Category:        "deep-learning",
		GithubURL:       "https://github.com/ozayn/AIML-projects/blob/main/Bank%20Customer%20Churn%20Prediction/code/notebook.ipynb",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/Bank%20Customer%20Churn%20Prediction/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Bank%20Customer%20Churn%20Prediction/images/heatmap_corr_categorical_corner.png",
		},
	},
	{
		ID:              4,
		Slug:            "credit-card-churn-prediction",
		Title:           "Credit Card User Churn Prediction",
		Description:     "Advanced Ensemble Learning using Random Forest, AdaBoost, SMOTE oversampling, and Hyperparameter Tuning for churn prediction.",
		Overview:        "Built an advanced predictive model to classify churn behavior using Ensemble Learning methods including Random Forest, AdaBoost, Gradient Boosting, and SMOTE oversampling with comprehensive Hyperparameter Tuning. This machine learning project addresses class imbalance in credit card customer data using advanced Ensemble Methods and sampling techniques to predict which customers are likely to cancel their cards. The model employs sophisticated Feature Engineering and Ensemble Learning algorithms to improve prediction accuracy and provide actionable insights for customer retention strategies in the financial services industry.",
		Technologies:    []string{"Ensemble Learning", "Random Forest", "AdaBoost", "SMOTE", "Hyperparameter Tuning"},
		Category:        "ensemble-learning",
		GithubURL:       "https://github.com/ozayn/AIML-projects/blob/main/Credit%20Card%20User%20Churn%20Prediction/code/notebook.ipynb",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/Credit%20Card%20User%20Churn%20Prediction/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Credit%20Card%20User%20Churn%20Prediction/images/pairplot_categorical.png",
		},
	},
	{
		ID:              5,
		Slug:            "personal-loan-campaign",
		Title:           "Personal Loan Campaign Analysis",
		Description:     "Advanced Decision Trees and Marketing Analytics for targeted loan campaigns with comprehensive customer segmentation strategies.",
		Overview:        "Analyzed customer attributes and built advanced Decision Tree models using Marketing Analytics techniques to predict loan acquisition likelihood and guide targeted marketing strategies. This comprehensive data analysis project examines customer demographics, financial behavior, and historical loan data using Decision Trees and Marketing Analytics to identify patterns that indicate loan acceptance probability. The model provides actionable insights for financial institutions to optimize their marketing campaigns through advanced Decision Tree analysis and targeted customer segmentation strategies.",
		Technologies:    []string{"Decision Trees", "Marketing Analytics", "Customer Segmentation", "Data Analysis"},
		Category:        "marketing-analytics",
		GithubURL:       "https://github.com/ozayn/AIML-projects/blob/main/Personal%20Loan%20Campaign/code/notebook.ipynb",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/Personal%20Loan%20Campaign/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Personal%20Loan%20Campaign/images/histplot_boxplot_Income_vs_Education.png",
		},
	},
	{
		ID:              6,
		Slug:            "subreddit-classification",
		Title:           "Subreddit Classification",
		Description:     "Applied natural language processing to classify texts from Yoga and Meditation subreddits using advanced NLP techniques.",
		Overview:        "Applied natural language processing to classify texts from Yoga and Meditation subreddits to develop a wellness program recommendation system. This project uses advanced NLP techniques including TF-IDF vectorization, Multinomial Naive Bayes, and Random Forest classification to analyze text patterns and personality types. The model achieved 88% accuracy in distinguishing between Yoga and Meditation practitioners, providing valuable insights for corporate wellness programs and employee personality-based recommendations.",
		Technologies:    []string{"NLP", "Text Classification", "Machine Learning", "Python"},
		Category:        "text-classification",
		GithubURL:       "https://github.com/ozayn/subreddit_classification_nlp",
		PresentationURL: "https://github.com/ozayn/subreddit_classification_nlp/blob/main/presentation/Project_3_presentation_Azin.pdf",
		Images: []string{
			"https://ozayn.github.io/images/project2/character_word_count_dist_title_content.png",
			"https://ozayn.github.io/images/project2/top_occurring_ngram_1_2.png",
		},
	},
	{
		ID:              7,
		Slug:            "standardized-test-analysis",
		Title:           "Standardized Test Analysis",
		Description:     "Compared college admission requirements with state test score averages using geospatial analysis and provided educational policy recommendations.",
		Overview:        "Figure out how the minimum college SAT/ACT requirements compare to the average of those scores in each state. In case the minimum requirement is higher than the state average, suggest solutions or further studies. This project analyzes 2017-2019 SAT and ACT scores by state, along with college admission requirements, using GeoPandas for geospatial visualization to identify states where average minimum college requirements exceed state averages and provide actionable recommendations for educational policy improvements.",
		Technologies:    []string{"Python", "Pandas", "GeoPandas", "Data Visualization"},
		Category:        "exploratory-analysis",
		GithubURL:       "https://github.com/ozayn/AIML-projects/tree/main/Standardized%20Test%20Analysis/code",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/Standardized%20Test%20Analysis/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/Standardized%20Test%20Analysis/images/top_ranking_map.png",
		},
	},
	{
		ID:              8,
		Slug:            "foodhub-orders",
		Title:           "FoodHub Orders",
		Description:     "Performed comprehensive EDA on restaurant orders to uncover demand patterns and provide business optimization recommendations.",
		Overview:        "Analyzing ~2K restaurant orders to uncover patterns in customer behavior, delivery dynamics, and revenue. FoodHub wants to optimize restaurant operations and customer satisfaction using data from previous orders. Explored 1,898 rows with 9 columns through univariate and multivariate analysis across cuisines, delivery metrics, cost, ratings, and time to help the company understand demand trends and improve customer experience.",
		Technologies:    []string{"Python", "Pandas", "NumPy", "Matplotlib", "Seaborn", "Tabulate"},
		Category:        "business-analytics",
		GithubURL:       "https://github.com/ozayn/AIML-projects/blob/main/FoodHub/code/notebook.ipynb",
		PresentationURL: "https://github.com/ozayn/AIML-projects/blob/main/FoodHub/Presentation.pdf",
		Images: []string{
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/FoodHub/images/histplot_cost_of_the_order.png",
			"https://raw.githubusercontent.com/ozayn/AIML-projects/main/FoodHub/images/boxplot_cuisine_type_food_preparation_time.png",
		},
	},
	{
		ID:              9,
		Slug:            "graphs-networks",
		Title:           "Graphs & Networks Exploration",
		Description:     "Analyzed offshore financial networks using graph theory and network analysis to explore real-world connection patterns.",
		Overview:        "Explored the real network of Offshore Leaks using data from The International Consortium of Investigative Journalists' database. Applied graph theory and network analysis to study connection patterns, discovering that the data followed the Preferential Attachment Model when analyzing in-degree and out-degrees. This project demonstrates advanced network analysis techniques for understanding complex real-world relationships in financial data.",
		Technologies:    []string{"Graph Theory", "Network Analysis", "Python", "NetworkX"},
		Category:        "graph-theory",
		GithubURL:       "https://github.com/ozayn/Capstone_project_GA",
		PresentationURL: "https://github.com/ozayn/Capstone_project_GA/blob/main/presentation/capstone_project_presentation_Azin.pdf",
		Images: []string{
			"https://ozayn.github.io/images/project1/03_link_secretary_of_wcon_loglog.png",
			"https://ozayn.github.io/images/project1/degree_distribution_log_log_linear.png",
		},
	},
}

// Projects returns every project in display order.
func Projects() []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		p.Images = append([]string(nil), p.Images...)
		out[i] = p
	}
	return out
}

// BySlug returns the project with the given slug.
func BySlug(slug string) (Project, error) {
	for _, p := range Projects() {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Project{}, ErrProjectNotFound
}
