package content

import "github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"

// cutoffAges lists the normed age intervals in ascending order.
var cutoffAges = []int{2, 4, 6, 8, 9, 10, 12, 14, 16, 18, 20, 22, 24, 27, 30, 33, 36, 42, 48, 54, 60}

// defaultCutoffs holds the normative cutoff rows per age interval and
// domain, derived from ASQ-3 style reference data.
var defaultCutoffs = map[int]map[model.QuestionnaireDomain]model.Cutoff{
	2: {
		model.QDomainCommunication:  {AtRisk: 20.12, Monitoring: 32.45, Mean: 44.78, SD: 12.33},
		model.QDomainGrossMotor:     {AtRisk: 25.88, Monitoring: 38.62, Mean: 51.36, SD: 12.74},
		model.QDomainFineMotor:      {AtRisk: 22.45, Monitoring: 35.78, Mean: 49.11, SD: 13.33},
		model.QDomainProblemSolving: {AtRisk: 24.56, Monitoring: 37.23, Mean: 49.90, SD: 12.67},
		model.QDomainPersonalSocial: {AtRisk: 23.78, Monitoring: 36.45, Mean: 49.12, SD: 12.67},
	},
	4: {
		model.QDomainCommunication:  {AtRisk: 18.45, Monitoring: 31.23, Mean: 44.01, SD: 12.78},
		model.QDomainGrossMotor:     {AtRisk: 22.34, Monitoring: 35.67, Mean: 49.00, SD: 13.33},
		model.QDomainFineMotor:      {AtRisk: 25.67, Monitoring: 38.12, Mean: 50.57, SD: 12.45},
		model.QDomainProblemSolving: {AtRisk: 23.89, Monitoring: 36.78, Mean: 49.67, SD: 12.89},
		model.QDomainPersonalSocial: {AtRisk: 24.12, Monitoring: 37.01, Mean: 49.90, SD: 12.89},
	},
	6: {
		model.QDomainCommunication:  {AtRisk: 16.78, Monitoring: 29.89, Mean: 43.00, SD: 13.11},
		model.QDomainGrossMotor:     {AtRisk: 20.45, Monitoring: 33.78, Mean: 47.11, SD: 13.33},
		model.QDomainFineMotor:      {AtRisk: 26.78, Monitoring: 39.12, Mean: 51.46, SD: 12.34},
		model.QDomainProblemSolving: {AtRisk: 24.56, Monitoring: 37.23, Mean: 49.90, SD: 12.67},
		model.QDomainPersonalSocial: {AtRisk: 22.89, Monitoring: 35.78, Mean: 48.67, SD: 12.89},
	},
	8: {
		model.QDomainCommunication:  {AtRisk: 15.23, Monitoring: 28.12, Mean: 41.01, SD: 12.89},
		model.QDomainGrossMotor:     {AtRisk: 19.78, Monitoring: 33.12, Mean: 46.46, SD: 13.34},
		model.QDomainFineMotor:      {AtRisk: 27.12, Monitoring: 39.45, Mean: 51.78, SD: 12.33},
		model.QDomainProblemSolving: {AtRisk: 24.89, Monitoring: 37.56, Mean: 50.23, SD: 12.67},
		model.QDomainPersonalSocial: {AtRisk: 22.34, Monitoring: 35.23, Mean: 48.12, SD: 12.89},
	},
	9: {
		model.QDomainCommunication:  {AtRisk: 15.45, Monitoring: 28.34, Mean: 41.23, SD: 12.89},
		model.QDomainGrossMotor:     {AtRisk: 20.12, Monitoring: 33.56, Mean: 47.00, SD: 13.44},
		model.QDomainFineMotor:      {AtRisk: 27.45, Monitoring: 39.67, Mean: 51.89, SD: 12.22},
		model.QDomainProblemSolving: {AtRisk: 25.01, Monitoring: 37.67, Mean: 50.33, SD: 12.66},
		model.QDomainPersonalSocial: {AtRisk: 22.45, Monitoring: 35.34, Mean: 48.23, SD: 12.89},
	},
	10: {
		model.QDomainCommunication:  {AtRisk: 15.56, Monitoring: 28.45, Mean: 41.34, SD: 12.89},
		model.QDomainGrossMotor:     {AtRisk: 20.89, Monitoring: 34.23, Mean: 47.57, SD: 13.34},
		model.QDomainFineMotor:      {AtRisk: 27.67, Monitoring: 39.78, Mean: 51.89, SD: 12.11},
		model.QDomainProblemSolving: {AtRisk: 25.12, Monitoring: 37.78, Mean: 50.44, SD: 12.66},
		model.QDomainPersonalSocial: {AtRisk: 22.56, Monitoring: 35.45, Mean: 48.34, SD: 12.89},
	},
	12: {
		model.QDomainCommunication:  {AtRisk: 15.64, Monitoring: 28.52, Mean: 41.4, SD: 12.88},
		model.QDomainGrossMotor:     {AtRisk: 21.93, Monitoring: 35.18, Mean: 48.43, SD: 13.25},
		model.QDomainFineMotor:      {AtRisk: 27.82, Monitoring: 39.49, Mean: 51.16, SD: 11.67},
		model.QDomainProblemSolving: {AtRisk: 25.21, Monitoring: 37.74, Mean: 50.27, SD: 12.53},
		model.QDomainPersonalSocial: {AtRisk: 22.45, Monitoring: 35.67, Mean: 48.89, SD: 13.22},
	},
	14: {
		model.QDomainCommunication:  {AtRisk: 15.12, Monitoring: 28.01, Mean: 40.90, SD: 12.89},
		model.QDomainGrossMotor:     {AtRisk: 30.45, Monitoring: 41.23, Mean: 52.01, SD: 10.78},
		model.QDomainFineMotor:      {AtRisk: 28.89, Monitoring: 40.12, Mean: 51.35, SD: 11.23},
		model.QDomainProblemSolving: {AtRisk: 25.45, Monitoring: 37.89, Mean: 50.33, SD: 12.44},
		model.QDomainPersonalSocial: {AtRisk: 24.12, Monitoring: 37.01, Mean: 49.90, SD: 12.89},
	},
	16: {
		model.QDomainCommunication:  {AtRisk: 14.98, Monitoring: 27.85, Mean: 40.72, SD: 12.87},
		model.QDomainGrossMotor:     {AtRisk: 33.12, Monitoring: 43.56, Mean: 54.00, SD: 10.44},
		model.QDomainFineMotor:      {AtRisk: 29.78, Monitoring: 40.67, Mean: 51.56, SD: 10.89},
		model.QDomainProblemSolving: {AtRisk: 25.67, Monitoring: 38.12, Mean: 50.57, SD: 12.45},
		model.QDomainPersonalSocial: {AtRisk: 25.34, Monitoring: 38.01, Mean: 50.68, SD: 12.67},
	},
	18: {
		model.QDomainCommunication:  {AtRisk: 14.85, Monitoring: 27.68, Mean: 40.51, SD: 12.83},
		model.QDomainGrossMotor:     {AtRisk: 35.16, Monitoring: 45.27, Mean: 55.38, SD: 10.11},
		model.QDomainFineMotor:      {AtRisk: 30.71, Monitoring: 41.25, Mean: 51.79, SD: 10.54},
		model.QDomainProblemSolving: {AtRisk: 25.84, Monitoring: 38.33, Mean: 50.82, SD: 12.49},
		model.QDomainPersonalSocial: {AtRisk: 26.45, Monitoring: 38.92, Mean: 51.39, SD: 12.47},
	},
	20: {
		model.QDomainCommunication:  {AtRisk: 16.45, Monitoring: 29.78, Mean: 43.11, SD: 13.33},
		model.QDomainGrossMotor:     {AtRisk: 35.45, Monitoring: 45.12, Mean: 54.79, SD: 9.67},
		model.QDomainFineMotor:      {AtRisk: 30.67, Monitoring: 41.45, Mean: 52.23, SD: 10.78},
		model.QDomainProblemSolving: {AtRisk: 26.89, Monitoring: 39.23, Mean: 51.57, SD: 12.34},
		model.QDomainPersonalSocial: {AtRisk: 28.45, Monitoring: 40.12, Mean: 51.79, SD: 11.67},
	},
	22: {
		model.QDomainCommunication:  {AtRisk: 17.89, Monitoring: 31.23, Mean: 44.57, SD: 13.34},
		model.QDomainGrossMotor:     {AtRisk: 36.12, Monitoring: 45.67, Mean: 55.22, SD: 9.55},
		model.QDomainFineMotor:      {AtRisk: 31.12, Monitoring: 41.89, Mean: 52.66, SD: 10.77},
		model.QDomainProblemSolving: {AtRisk: 27.45, Monitoring: 39.78, Mean: 52.11, SD: 12.33},
		model.QDomainPersonalSocial: {AtRisk: 29.34, Monitoring: 40.89, Mean: 52.44, SD: 11.55},
	},
	24: {
		model.QDomainCommunication:  {AtRisk: 19.52, Monitoring: 32.97, Mean: 46.42, SD: 13.45},
		model.QDomainGrossMotor:     {AtRisk: 36.71, Monitoring: 46.03, Mean: 55.35, SD: 9.32},
		model.QDomainFineMotor:      {AtRisk: 31.52, Monitoring: 42.18, Mean: 52.84, SD: 10.66},
		model.QDomainProblemSolving: {AtRisk: 27.98, Monitoring: 40.12, Mean: 52.26, SD: 12.14},
		model.QDomainPersonalSocial: {AtRisk: 30.25, Monitoring: 41.87, Mean: 53.49, SD: 11.62},
	},
	27: {
		model.QDomainCommunication:  {AtRisk: 22.34, Monitoring: 35.67, Mean: 49.00, SD: 13.33},
		model.QDomainGrossMotor:     {AtRisk: 36.89, Monitoring: 46.23, Mean: 55.57, SD: 9.34},
		model.QDomainFineMotor:      {AtRisk: 29.45, Monitoring: 40.78, Mean: 52.11, SD: 11.33},
		model.QDomainProblemSolving: {AtRisk: 28.67, Monitoring: 40.89, Mean: 53.11, SD: 12.22},
		model.QDomainPersonalSocial: {AtRisk: 32.12, Monitoring: 43.45, Mean: 54.78, SD: 11.33},
	},
	30: {
		model.QDomainCommunication:  {AtRisk: 25.67, Monitoring: 38.12, Mean: 50.57, SD: 12.45},
		model.QDomainGrossMotor:     {AtRisk: 36.78, Monitoring: 46.12, Mean: 55.46, SD: 9.34},
		model.QDomainFineMotor:      {AtRisk: 28.34, Monitoring: 39.89, Mean: 51.44, SD: 11.55},
		model.QDomainProblemSolving: {AtRisk: 29.45, Monitoring: 41.67, Mean: 53.89, SD: 12.22},
		model.QDomainPersonalSocial: {AtRisk: 33.56, Monitoring: 44.23, Mean: 54.90, SD: 10.67},
	},
	33: {
		model.QDomainCommunication:  {AtRisk: 28.12, Monitoring: 40.34, Mean: 52.56, SD: 12.22},
		model.QDomainGrossMotor:     {AtRisk: 36.78, Monitoring: 46.12, Mean: 55.46, SD: 9.34},
		model.QDomainFineMotor:      {AtRisk: 27.89, Monitoring: 39.56, Mean: 51.23, SD: 11.67},
		model.QDomainProblemSolving: {AtRisk: 30.34, Monitoring: 42.23, Mean: 54.12, SD: 11.89},
		model.QDomainPersonalSocial: {AtRisk: 34.23, Monitoring: 44.78, Mean: 55.33, SD: 10.55},
	},
	36: {
		model.QDomainCommunication:  {AtRisk: 30.66, Monitoring: 42.12, Mean: 53.58, SD: 11.46},
		model.QDomainGrossMotor:     {AtRisk: 36.82, Monitoring: 46.27, Mean: 55.72, SD: 9.45},
		model.QDomainFineMotor:      {AtRisk: 27.56, Monitoring: 39.44, Mean: 51.32, SD: 11.88},
		model.QDomainProblemSolving: {AtRisk: 31.24, Monitoring: 42.87, Mean: 54.50, SD: 11.63},
		model.QDomainPersonalSocial: {AtRisk: 35.16, Monitoring: 45.33, Mean: 55.50, SD: 10.17},
	},
	42: {
		model.QDomainCommunication:  {AtRisk: 35.78, Monitoring: 46.12, Mean: 56.46, SD: 10.34},
		model.QDomainGrossMotor:     {AtRisk: 36.45, Monitoring: 46.23, Mean: 56.01, SD: 9.78},
		model.QDomainFineMotor:      {AtRisk: 29.12, Monitoring: 40.89, Mean: 52.66, SD: 11.77},
		model.QDomainProblemSolving: {AtRisk: 31.12, Monitoring: 43.01, Mean: 54.90, SD: 11.89},
		model.QDomainPersonalSocial: {AtRisk: 37.45, Monitoring: 47.12, Mean: 56.79, SD: 9.67},
	},
	48: {
		model.QDomainCommunication:  {AtRisk: 40.71, Monitoring: 49.52, Mean: 58.33, SD: 8.81},
		model.QDomainGrossMotor:     {AtRisk: 35.88, Monitoring: 46.16, Mean: 56.44, SD: 10.28},
		model.QDomainFineMotor:      {AtRisk: 30.51, Monitoring: 42.09, Mean: 53.67, SD: 11.58},
		model.QDomainProblemSolving: {AtRisk: 30.93, Monitoring: 43.13, Mean: 55.33, SD: 12.20},
		model.QDomainPersonalSocial: {AtRisk: 39.52, Monitoring: 48.27, Mean: 57.02, SD: 8.75},
	},
	54: {
		model.QDomainCommunication:  {AtRisk: 41.89, Monitoring: 50.45, Mean: 59.01, SD: 8.56},
		model.QDomainGrossMotor:     {AtRisk: 38.12, Monitoring: 47.67, Mean: 57.22, SD: 9.55},
		model.QDomainFineMotor:      {AtRisk: 29.67, Monitoring: 41.89, Mean: 54.11, SD: 12.22},
		model.QDomainProblemSolving: {AtRisk: 33.12, Monitoring: 44.78, Mean: 56.44, SD: 11.66},
		model.QDomainPersonalSocial: {AtRisk: 40.23, Monitoring: 49.01, Mean: 57.79, SD: 8.78},
	},
	60: {
		model.QDomainCommunication:  {AtRisk: 42.88, Monitoring: 51.16, Mean: 59.44, SD: 8.28},
		model.QDomainGrossMotor:     {AtRisk: 40.27, Monitoring: 49.13, Mean: 57.99, SD: 8.86},
		model.QDomainFineMotor:      {AtRisk: 28.72, Monitoring: 41.52, Mean: 54.32, SD: 12.80},
		model.QDomainProblemSolving: {AtRisk: 35.26, Monitoring: 46.38, Mean: 57.50, SD: 11.12},
		model.QDomainPersonalSocial: {AtRisk: 40.88, Monitoring: 49.73, Mean: 58.58, SD: 8.85},
	},
}
