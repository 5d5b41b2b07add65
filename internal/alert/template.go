package alert

// One template serves both alert variants; the attachment and inline-image
// handling stays identical between them that way.
const alertTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Heading}}</title>
  <style>
    body {
      font-family: 'Helvetica Neue', Arial, sans-serif;
      line-height: 1.7;
      color: #444;
      max-width: 650px;
      margin: 0 auto;
      padding: 0;
      background-color: #f9f9fb;
    }
    .container {
      border-radius: 12px;
      padding: 35px;
      background-color: #ffffff;
      box-shadow: 0 5px 20px rgba(0,0,0,0.06);
      margin: 20px;
    }
    .header {
      text-align: center;
      margin-bottom: 30px;
      padding-bottom: 20px;
      border-bottom: 1px solid #eef1f5;
    }
    .header h2 {
      color: #2c3e50;
      margin: 0;
      font-weight: 700;
      font-size: 24px;
    }
    .alert {
      background-color: #fff8f8;
      border-left: 4px solid #ff5252;
      padding: 20px;
      margin-bottom: 28px;
      border-radius: 6px;
    }
    .content-box {
      background-color: #f9fafb;
      padding: 25px;
      border-radius: 8px;
      margin: 25px 0;
      border: 1px solid #eef1f5;
    }
    .content-title {
      color: #2c3e50;
      font-size: 18px;
      font-weight: 600;
      margin-top: 0;
      margin-bottom: 15px;
      padding-bottom: 12px;
      border-bottom: 1px solid #eef1f5;
    }
    .content-text {
      color: #34495e;
      white-space: pre-line;
      line-height: 1.6;
    }
    .content-image {
      max-width: 100%;
      height: auto;
      margin-top: 18px;
      border-radius: 6px;
    }
    .btn {
      display: inline-block;
      background-color: #3498db;
      color: white !important;
      padding: 12px 25px;
      text-decoration: none;
      border-radius: 6px;
      font-weight: 500;
    }
    .action-container {
      text-align: center;
      margin: 25px 0;
    }
    .resources {
      background-color: #f1f8ff;
      padding: 22px;
      border-radius: 8px;
      margin-top: 30px;
      border-left: 4px solid #3498db;
    }
    .resources h4 {
      margin-top: 0;
      color: #2c3e50;
      font-size: 17px;
    }
    .footer {
      margin-top: 35px;
      text-align: center;
      font-size: 14px;
      color: #8795a1;
      padding-top: 20px;
      border-top: 1px solid #eef1f5;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>{{.Heading}}</h2>
    </div>

    <p>Hello {{.RecipientName}},</p>

    <div class="alert">
      {{if .IsPost}}
      <p>Your friend <strong>{{.AuthorName}}</strong> has posted content that our system has detected as potentially concerning for their wellbeing.</p>
      {{else}}
      <p>Your friend <strong>{{.AuthorName}}</strong> has posted a comment that our system has detected as potentially concerning.</p>
      {{end}}
    </div>

    <div class="content-box">
      {{if .IsPost}}
      <h3 class="content-title">{{.PostTitle}}</h3>
      <div class="content-text">{{.Body}}</div>
      {{else}}
      <div class="content-text"><em>&quot;{{.Body}}&quot;</em></div>
      {{end}}
      {{if .ImageFilename}}
      <img src="cid:{{.ImageFilename}}" class="content-image" alt="Post image">
      {{end}}
    </div>

    <div class="action-container">
      <a href="{{.ViewURL}}" class="btn">View Post</a>
    </div>

    <p>It might be helpful to reach out to {{.AuthorName}} to check in and see how they're doing. Your support could make a significant difference during this challenging time.</p>

    <div class="resources">
      <h4>Resources for Support</h4>
      <p>If you believe this is an emergency situation, please consider:</p>
      <ul>
        <li>Contacting {{.AuthorName}} directly</li>
        <li>Reaching out to local emergency services</li>
        <li>Calling the National Suicide Prevention Lifeline: 988 or 1-800-273-8255</li>
      </ul>
    </div>

    <div class="footer">
      <p>This is an automated alert from Smart Detector.</p>
      <p>Helping friends support each other through difficult times.</p>
    </div>
  </div>
</body>
</html>
`
