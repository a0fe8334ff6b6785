// Package report renders HR spreadsheets.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/artem13815/hr-trainer/pkg/evaluation"
	"github.com/artem13815/hr-trainer/pkg/interview"
)

const (
	SheetSummary    = "Resumo"
	SheetInterviews = "Entrevistas"
	SheetTemplate   = "Prompts"
)

var interviewHeaders = []interface{}{
	"Candidato", "Email", "Perfil da vaga", "Concluída em",
	"Empatia", "Resolução de Problemas", "Comunicação", "Tom de Voz", "Eficiência",
	"Nota geral", "Ponto forte", "Área a desenvolver",
}

// WriteDashboard writes evaluated interviews as an XLSX workbook with a summary
// sheet and one row per interview.
func WriteDashboard(w io.Writer, items []interview.DashboardItem, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetInterviews); err != nil {
		return err
	}
	if err := writeSummary(f, items, generatedAt); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeInterviews(f, items); err != nil {
		return fmt.Errorf("interviews sheet: %w", err)
	}
	return f.Write(w)
}

func writeSummary(f *excelize.File, items []interview.DashboardItem, generatedAt time.Time) error {
	var avg float64
	for _, it := range items {
		avg += it.Evaluation.OverallScore
	}
	if len(items) > 0 {
		avg /= float64(len(items))
	}

	rows := [][]interface{}{
		{"Relatório de entrevistas"},
		{"Gerado em", generatedAt.Format(time.RFC3339)},
		{"Entrevistas avaliadas", len(items)},
		{"Nota média", roundTo2(avg)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(SheetSummary, "A1", "A1", titleStyle)
	_ = f.SetCellStyle(SheetSummary, "A2", "A4", labelStyle)
	return f.SetColWidth(SheetSummary, "A", "B", 28)
}

func writeInterviews(f *excelize.File, items []interview.DashboardItem) error {
	if err := f.SetSheetRow(SheetInterviews, "A1", &interviewHeaders); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(interviewHeaders), 1)
	_ = f.SetCellStyle(SheetInterviews, "A1", lastHeader, headerStyle)

	for i, it := range items {
		completed := ""
		if it.CompletedAt != nil {
			completed = it.CompletedAt.Format("2006-01-02 15:04")
		}
		row := []interface{}{it.CandidateName, it.CandidateEmail, it.JobProfile, completed}
		for _, c := range evaluation.Criteria {
			row = append(row, it.Evaluation.Scores.Get(c).Score)
		}
		row = append(row, it.Evaluation.OverallScore, it.Evaluation.Summary.Strength, it.Evaluation.Summary.DevelopmentArea)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetInterviews, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetInterviews, "A", "D", 22); err != nil {
		return err
	}
	return f.SetColWidth(SheetInterviews, "K", "L", 40)
}

var templateHeaders = []interface{}{
	"name", "category", "promptType", "content", "language", "behavior", "tone",
	"context", "expectedResponse", "evaluationCriteria", "difficulty", "timeLimit", "keywords", "priority",
}

var templateExamples = [][]interface{}{
	{
		"Cliente com internet lenta", "CUSTOMER_SERVICE", "INITIAL_MESSAGE",
		"Olá, minha internet está muito lenta nos últimos dias. Podem me ajudar?",
		"pt-BR", "CASUAL", "CHALLENGING", "Cliente residencial, plano 300MB",
		"Empatia e diagnóstico guiado", "empatia;resolução;clareza", "MEDIUM", 300, "internet;lentidão", 1,
	},
	{
		"Pergunta de acompanhamento", "INTERVIEW", "FOLLOW_UP",
		"Já reiniciei o modem e nada mudou. O que mais posso fazer?",
		"pt-BR", "PROFESSIONAL", "NEUTRAL", "", "Próximos passos claros", "eficiência", "EASY", "", "modem", 2,
	},
}

// WritePromptTemplate writes an empty prompt-library sheet with example rows.
func WritePromptTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTemplate); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetTemplate, "A1", &templateHeaders); err != nil {
		return err
	}
	for i, ex := range templateExamples {
		row := ex
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetTemplate, cell, &row); err != nil {
			return err
		}
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(templateHeaders), 1)
	_ = f.SetCellStyle(SheetTemplate, "A1", lastHeader, style)
	return f.Write(w)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
